package gamemaster

import (
	"context"
	"errors"
	"sync"

	"cartographers/game"
	"cartographers/metrics"

	"github.com/rs/zerolog/log"
)

// Repository loads games and merges player states back.
type Repository interface {
	GetGame(ctx context.Context, id string) (GameState, error)
	UpdatePlayerState(ctx context.Context, id string, ps PlayerGameState) (GameState, error)
}

// GameMaster validates moves against persisted games before recording them.
type GameMaster struct {
	repo      Repository
	collector metrics.Collector
	mutex     sync.Mutex
}

func NewGameMaster(repo Repository, collector metrics.Collector) *GameMaster {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &GameMaster{
		repo:      repo,
		collector: collector,
	}
}

func (gm *GameMaster) GetGame(ctx context.Context, gameID string) (GameState, error) {
	return gm.repo.GetGame(ctx, gameID)
}

// CurrentState replays the game as seen by viewerID.
func (gm *GameMaster) CurrentState(ctx context.Context, gameID, viewerID string) (CurrentGameState, error) {
	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return CurrentGameState{}, err
	}
	gm.collector.AddReplay(ctx)
	return StateToCurrentState(state, viewerID), nil
}

// CurrentPlayerState replays the full history of playerID.
func (gm *GameMaster) CurrentPlayerState(ctx context.Context, gameID, playerID string) (CurrentPlayerGameState, error) {
	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return CurrentPlayerGameState{}, err
	}
	gm.collector.AddReplay(ctx)
	return CurrentPlayerState(state, playerID)
}

func (gm *GameMaster) Join(ctx context.Context, gameID string, player Player) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if _, err := AddPlayer(state, player); err != nil {
		return err
	}
	_, err = gm.repo.UpdatePlayerState(ctx, gameID, PlayerGameState{Player: player, MoveHistory: []game.AnyMove{}})
	if err == nil {
		log.Info().Str("game", gameID).Str("player", player.ID).Msg("player joined")
	}
	return err
}

func (gm *GameMaster) Preview(ctx context.Context, gameID, playerID string, move game.Move) (TempPlayerGameState, error) {
	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return TempPlayerGameState{}, err
	}
	gm.collector.AddReplay(ctx)
	return Preview(state, playerID, move)
}

func (gm *GameMaster) SubmitMove(ctx context.Context, gameID, playerID string, move game.Move) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	next, err := SubmitMove(state, playerID, move)
	if err != nil {
		gm.collector.AddRejectedMove(ctx, gameID, rejectReason(err))
		return err
	}
	return gm.commit(ctx, gameID, state, next, playerID)
}

func (gm *GameMaster) EndSeason(ctx context.Context, gameID, playerID string) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	state, err := gm.repo.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	next, err := EndSeason(state, playerID)
	if err != nil {
		gm.collector.AddRejectedMove(ctx, gameID, rejectReason(err))
		return err
	}
	if err := gm.commit(ctx, gameID, state, next, playerID); err != nil {
		return err
	}

	current, err := CurrentPlayerState(next, playerID)
	if err != nil {
		return err
	}
	if n := len(current.SeasonScores); n > 0 {
		gm.collector.AddSeasonScore(ctx, gameID, playerID, current.SeasonScores[n-1])
	}
	return nil
}

// commit stores the history of playerID from next and counts the moves added since state.
func (gm *GameMaster) commit(ctx context.Context, gameID string, state, next GameState, playerID string) error {
	before, err := state.Player(playerID)
	if err != nil {
		return err
	}
	after, err := next.Player(playerID)
	if err != nil {
		return err
	}
	if _, err := gm.repo.UpdatePlayerState(ctx, gameID, after); err != nil {
		return err
	}
	for _, m := range after.MoveHistory[len(before.MoveHistory):] {
		gm.collector.AddMove(ctx, gameID, !m.IsRegular())
	}
	return nil
}

func rejectReason(err error) string {
	for _, sentinel := range []error{ErrInvalidMove, ErrPlacementConflict, ErrNoCardToPlace, ErrSeasonNotOver, ErrGameOver, ErrPlayerNotFound} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "invalid"
}
