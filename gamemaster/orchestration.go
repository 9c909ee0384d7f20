package gamemaster

import (
	"fmt"
	"slices"

	"cartographers/game"
)

// TempPlayerGameState is a player state with a candidate shape drawn on it.
type TempPlayerGameState struct {
	CurrentPlayerGameState
	HasConflict           bool  `json:"hasConflict"`
	ConflictedCellIndices []int `json:"conflictedCellIndices"`
}

// TempPlayerStateWithShape draws shape on the board of current. On conflict the board and
// scores stay those of current.
func TempPlayerStateWithShape(state GameState, current CurrentPlayerGameState, shape game.PlacedLandscapeShape) TempPlayerGameState {
	result := game.TryPlaceShapeOnBoard(current.BoardState, shape)
	temp := TempPlayerGameState{
		CurrentPlayerGameState: current,
		HasConflict:            result.HasConflict(),
		ConflictedCellIndices:  result.ConflictedCellIndices,
	}
	if temp.HasConflict {
		return temp
	}

	temp.BoardState = result.UpdatedBoard
	temp.ScoreInfos = game.GetScoresFromBoard(state.Goals, &temp.BoardState)
	temp.Scores = game.Scores(temp.ScoreInfos)
	_, temp.Coins, _ = game.SplitScores(temp.Scores)
	return temp
}

// Preview shows what move would do to the board of playerID without recording it.
func Preview(state GameState, playerID string, move game.Move) (TempPlayerGameState, error) {
	current, err := CurrentPlayerState(state, playerID)
	if err != nil {
		return TempPlayerGameState{}, err
	}
	if current.CardToPlace == nil {
		return TempPlayerGameState{}, ErrNoCardToPlace
	}

	shape, err := game.PlacedShapeFromMove(move, *current.CardToPlace)
	if err != nil {
		return TempPlayerGameState{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	return TempPlayerStateWithShape(state, current, shape), nil
}

// SubmitMove validates move against the current card of playerID and appends it, followed by
// the placing effects of every monster played so far. A conflicting move is only accepted
// when the card cannot be placed anywhere; replay then discards the card.
func SubmitMove(state GameState, playerID string, move game.Move) (GameState, error) {
	current, err := CurrentPlayerState(state, playerID)
	if err != nil {
		return state, err
	}
	if current.IsEndOfGame {
		return state, ErrGameOver
	}
	if current.CardToPlace == nil {
		return state, ErrNoCardToPlace
	}
	card := *current.CardToPlace

	move = game.NormalizeRotations(move)
	shape, err := game.PlacedShapeFromMove(move, card)
	if err != nil {
		return state, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	result := game.TryPlaceShapeOnBoard(current.BoardState, shape)
	if result.HasConflict() && game.CanPlaceCard(&current.BoardState, card) {
		return state, fmt.Errorf("%w: cells %v of %s", ErrPlacementConflict, result.ConflictedCellIndices, card.Name)
	}

	next := AddMoveToGame(state, game.RegularMove(move), playerID)
	if result.HasConflict() {
		return next, nil
	}
	board := result.UpdatedBoard
	for _, monster := range playedMonsters(current.AllPlayedCards) {
		effect := game.GetPlacingMonsterMove(&board, monster)
		if effect == nil {
			continue
		}
		board = game.ApplySpecialEffect(board, *effect)
		next = AddMoveToGame(next, game.SpecialMoveOf(*effect), playerID)
	}
	return next, nil
}

// playedMonsters lists the monster types of cards in order of first appearance.
func playedMonsters(cards []game.LandscapeCard) []game.MonsterType {
	var monsters []game.MonsterType
	for _, card := range cards {
		if card.Monster != "" && !slices.Contains(monsters, card.Monster) {
			monsters = append(monsters, card.Monster)
		}
	}
	return monsters
}

// EndSeason closes the season of playerID: the end-of-season effects of every monster played
// so far, then the season change. Effects are decided one after another on a working board.
func EndSeason(state GameState, playerID string) (GameState, error) {
	current, err := CurrentPlayerState(state, playerID)
	if err != nil {
		return state, err
	}
	if current.IsEndOfGame {
		return state, ErrGameOver
	}
	if !current.IsEndOfSeason {
		return state, ErrSeasonNotOver
	}

	next := state
	board := current.BoardState
	for _, card := range current.AllPlayedCards {
		if !card.IsMonster() {
			continue
		}
		effect := game.GetSeasonEndMonsterMove(&board, card.Monster)
		if effect == nil {
			continue
		}
		board = game.ApplySpecialEffect(board, *effect)
		next = AddMoveToGame(next, game.SpecialMoveOf(*effect), playerID)
	}
	return AddMoveToGame(next, game.SeasonChange(), playerID), nil
}
