package gamemaster

import (
	"slices"

	"cartographers/game"

	"github.com/rs/zerolog/log"
)

// replayAll disables the fog-of-war cap on a replay.
const replayAll = -1

// CurrentPlayerGameState is the read model of one player, derived from its move history.
type CurrentPlayerGameState struct {
	Player            Player               `json:"player"`
	MoveHistory       []game.AnyMove       `json:"moveHistory"`
	BoardState        game.Board           `json:"boardState"`
	SeasonScores      []game.SeasonScore   `json:"seasonScores"`
	Coins             int                  `json:"coins"`
	Season            *game.Season         `json:"season,omitempty"`
	SeasonGoals       []game.Goal          `json:"seasonGoals"`
	IsStartOfSeason   bool                 `json:"isStartOfSeason"`
	IsEndOfSeason     bool                 `json:"isEndOfSeason"`
	IsEndOfGame       bool                 `json:"isEndOfGame"`
	CardToPlace       *game.LandscapeCard  `json:"cardToPlace,omitempty"`
	PlayedSeasonCards []game.LandscapeCard `json:"playedSeasonCards"`
	AllPlayedCards    []game.LandscapeCard `json:"allPlayedCards"`
	ScoreInfos        []game.ScoreInfo     `json:"scoreInfos"`
	Scores            []int                `json:"scores"`
	TimeProgress      int                  `json:"timeProgress"`
}

type CurrentGameState struct {
	PlayerStates []CurrentPlayerGameState `json:"playerStates"`
}

// TotalScore sums the season snapshots taken so far.
func (s CurrentPlayerGameState) TotalScore() int {
	total := 0
	for _, score := range s.SeasonScores {
		total += score.TotalScore
	}
	return total
}

// StateToCurrentState replays every player as seen by viewerID: nobody is shown further
// than the viewer's own history, until the viewer has finished the game.
func StateToCurrentState(state GameState, viewerID string) CurrentGameState {
	limit := 0
	if i := FindPlayerIndex(state.PlayerStates, viewerID); i != -1 {
		history := state.PlayerStates[i].MoveHistory
		limit = len(history)
		if countSeasonChanges(history) >= len(game.Seasons) {
			limit = replayAll
		}
	}

	current := CurrentGameState{PlayerStates: make([]CurrentPlayerGameState, 0, len(state.PlayerStates))}
	for _, ps := range state.PlayerStates {
		current.PlayerStates = append(current.PlayerStates, PlayerStateToCurrentState(state, ps, limit))
	}
	return current
}

// CurrentPlayerState replays the full history of one player.
func CurrentPlayerState(state GameState, playerID string) (CurrentPlayerGameState, error) {
	ps, err := state.Player(playerID)
	if err != nil {
		return CurrentPlayerGameState{}, err
	}
	return PlayerStateToCurrentState(state, ps, replayAll), nil
}

// PlayerStateToCurrentState replays the first numberOfMoves moves of ps (all of them when negative).
func PlayerStateToCurrentState(state GameState, ps PlayerGameState, numberOfMoves int) CurrentPlayerGameState {
	moves := ps.MoveHistory
	if numberOfMoves >= 0 && numberOfMoves < len(moves) {
		moves = moves[:numberOfMoves]
	}

	board, seasonScores := replayBoard(state, ps.Player, moves)

	seasonIndex := min(countSeasonChanges(moves), len(game.Seasons))
	cardIndex := regularMovesOfCurrentSeason(moves)

	var season *game.Season
	var seasonGoals []game.Goal
	if seasonIndex < len(game.Seasons) {
		s := game.Seasons[seasonIndex]
		season = &s
		for i, goal := range state.Goals {
			if slices.Contains(s.GoalIndices, i) {
				seasonGoals = append(seasonGoals, goal)
			}
		}
	}

	var deck []game.LandscapeCard
	if seasonIndex < len(state.SeasonSetups) {
		deck = state.SeasonSetups[seasonIndex].CardDeck
	}
	previouslyPlayed := deck[:min(cardIndex, len(deck))]
	timeProgress := game.TimeProgress(previouslyPlayed)

	isEndOfSeason := cardIndex >= len(deck) || (season != nil && timeProgress >= season.Duration)

	playedSeasonCards := previouslyPlayed
	var cardToPlace *game.LandscapeCard
	if !isEndOfSeason {
		playedSeasonCards = deck[:cardIndex+1]
		card := deck[cardIndex]
		cardToPlace = &card
	}

	var allPlayed []game.LandscapeCard
	for _, setup := range state.SeasonSetups[:min(seasonIndex, len(state.SeasonSetups))] {
		allPlayed = append(allPlayed, setup.CardDeck...)
	}
	allPlayed = append(allPlayed, playedSeasonCards...)

	scoreInfos := game.GetScoresFromBoard(state.Goals, &board)
	scores := game.Scores(scoreInfos)
	_, coins, _ := game.SplitScores(scores)

	return CurrentPlayerGameState{
		Player:            ps.Player,
		MoveHistory:       moves,
		BoardState:        board,
		SeasonScores:      seasonScores,
		Coins:             coins,
		Season:            season,
		SeasonGoals:       seasonGoals,
		IsStartOfSeason:   cardIndex == 0 && season != nil,
		IsEndOfSeason:     isEndOfSeason,
		IsEndOfGame:       seasonIndex >= len(game.Seasons),
		CardToPlace:       cardToPlace,
		PlayedSeasonCards: playedSeasonCards,
		AllPlayedCards:    allPlayed,
		ScoreInfos:        scoreInfos,
		Scores:            scores,
		TimeProgress:      timeProgress,
	}
}

// replayBoard folds moves over the initial board. Regular moves consume the season decks in
// order; a corrupt history stops the replay and returns what was built so far.
func replayBoard(state GameState, player Player, moves []game.AnyMove) (game.Board, []game.SeasonScore) {
	board := game.NewBoard()
	seasonScores := []game.SeasonScore{}

	var cards []game.LandscapeCard
	for _, setup := range state.SeasonSetups {
		cards = append(cards, setup.CardDeck...)
	}

	next, seasonIndex := 0, 0
	for i, move := range moves {
		switch {
		case move.IsRegular():
			if next >= len(cards) {
				log.Error().Str("player", player.ID).Int("move", i).Msg("No card left to place")
				return board, seasonScores
			}
			card := cards[next]
			next++

			shape, err := game.PlacedShapeFromMove(*move.Regular, card)
			if err != nil {
				log.Error().Err(err).Str("player", player.ID).Int("move", i).Msg("Invalid move in history")
				return board, seasonScores
			}
			result := game.TryPlaceShapeOnBoard(board, shape)
			if result.HasConflict() {
				// The card could not be placed anywhere and was discarded.
				log.Debug().Str("player", player.ID).Str("card", card.Name).Msg("Discarded card")
				continue
			}
			board = result.UpdatedBoard

		case move.IsSeasonChange():
			if seasonIndex < len(game.Seasons) {
				scores := game.Scores(game.GetScoresFromBoard(state.Goals, &board))
				seasonScores = append(seasonScores, game.NewSeasonScore(game.Seasons[seasonIndex], scores))
			}
			seasonIndex++

		case move.IsMonsterEffect():
			board = game.ApplySpecialEffect(board, *move.Special)
		}
	}
	return board, seasonScores
}

func countSeasonChanges(moves []game.AnyMove) int {
	count := 0
	for _, m := range moves {
		if m.IsSeasonChange() {
			count++
		}
	}
	return count
}

func regularMovesOfCurrentSeason(moves []game.AnyMove) int {
	count := 0
	for i := len(moves) - 1; i >= 0 && !moves[i].IsSeasonChange(); i-- {
		if moves[i].IsRegular() {
			count++
		}
	}
	return count
}
