package gamemaster

import (
	"errors"
	"fmt"

	"cartographers/game"
	"cartographers/utils"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerExists      = errors.New("player already joined")
	ErrInvalidMove       = errors.New("invalid move")
	ErrPlacementConflict = errors.New("placement conflict")
	ErrNoCardToPlace     = errors.New("no card to place")
	ErrSeasonNotOver     = errors.New("season is not over")
	ErrGameOver          = errors.New("game is over")
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerGameState is the only persisted per-player state. Everything else is derived from
// the move history by replay.
type PlayerGameState struct {
	Player      Player         `json:"player"`
	MoveHistory []game.AnyMove `json:"moveHistory"`
}

type SeasonSetup struct {
	Season                game.Season          `json:"season"`
	CardDeck              []game.LandscapeCard `json:"cardDeck"`
	RemainingSpecialCards []game.LandscapeCard `json:"remainingSpecialCards"`
}

// GameState is the persisted game. Decks are shuffled once at creation and never again.
type GameState struct {
	Goals        []game.Goal       `json:"goals"`
	SeasonSetups []SeasonSetup     `json:"seasonSetups"`
	PlayerStates []PlayerGameState `json:"playerStates"`
}

// Copy returns a copy whose player states and move histories can be appended to freely.
// Cards and goals are static data and stay shared.
func (gs GameState) Copy() GameState {
	players := make([]PlayerGameState, len(gs.PlayerStates))
	for i, ps := range gs.PlayerStates {
		players[i] = PlayerGameState{
			Player:      ps.Player,
			MoveHistory: append([]game.AnyMove(nil), ps.MoveHistory...),
		}
	}
	return GameState{
		Goals:        append([]game.Goal(nil), gs.Goals...),
		SeasonSetups: append([]SeasonSetup(nil), gs.SeasonSetups...),
		PlayerStates: players,
	}
}

// Player returns the state of the player with id.
func (gs GameState) Player(id string) (PlayerGameState, error) {
	i := FindPlayerIndex(gs.PlayerStates, id)
	if i == -1 {
		return PlayerGameState{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return gs.PlayerStates[i], nil
}

func FindPlayerIndex(states []PlayerGameState, id string) int {
	return utils.FindIndexFunc(states, func(ps PlayerGameState) bool {
		return ps.Player.ID == id
	})
}

// AddPlayer joins player to the game with an empty history.
func AddPlayer(state GameState, player Player) (GameState, error) {
	if FindPlayerIndex(state.PlayerStates, player.ID) != -1 {
		return state, fmt.Errorf("%w: %s", ErrPlayerExists, player.ID)
	}
	next := state.Copy()
	next.PlayerStates = append(next.PlayerStates, PlayerGameState{Player: player, MoveHistory: []game.AnyMove{}})
	return next, nil
}

// AddMoveToGame appends move to the history of playerID. Unknown players leave the state unchanged.
func AddMoveToGame(state GameState, move game.AnyMove, playerID string) GameState {
	i := FindPlayerIndex(state.PlayerStates, playerID)
	if i == -1 {
		return state
	}
	ps := state.PlayerStates[i]
	history := append(append([]game.AnyMove(nil), ps.MoveHistory...), move)
	return UpdatePlayerState(state, PlayerGameState{Player: ps.Player, MoveHistory: history})
}

// UpdatePlayerState replaces the state of the player with the same id, or appends it.
func UpdatePlayerState(state GameState, ps PlayerGameState) GameState {
	next := state.Copy()
	if i := FindPlayerIndex(next.PlayerStates, ps.Player.ID); i != -1 {
		next.PlayerStates[i] = ps
	} else {
		next.PlayerStates = append(next.PlayerStates, ps)
	}
	return next
}
