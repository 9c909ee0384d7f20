package gamemaster

import (
	"testing"

	"cartographers/game"
	"cartographers/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(t *testing.T, state GameState, playerID string) []game.AnyMove {
	t.Helper()
	ps, err := state.Player(playerID)
	require.NoError(t, err)
	return ps.MoveHistory
}

// firstMove picks the first legal placement, or a discard when the card fits nowhere.
func firstMove(current CurrentPlayerGameState) game.Move {
	moves := game.LegalMoves(&current.BoardState, *current.CardToPlace)
	if len(moves) == 0 {
		return at(-game.BOARD_SIZE, -game.BOARD_SIZE)
	}
	return moves[0]
}

func playSeason(t *testing.T, state GameState, playerID string) GameState {
	t.Helper()
	for {
		current, err := CurrentPlayerState(state, playerID)
		require.NoError(t, err)
		if current.IsEndOfSeason {
			return state
		}
		state, err = SubmitMove(state, playerID, firstMove(current))
		require.NoError(t, err)
	}
}

func monsterCard(t *testing.T, monster game.MonsterType) game.LandscapeCard {
	t.Helper()
	i := utils.FindIndexFunc(game.MonsterCards, func(c game.LandscapeCard) bool { return c.Monster == monster })
	require.NotEqual(t, -1, i)
	return game.MonsterCards[i]
}

func TestSubmitMove(t *testing.T) {
	state, err := SubmitMove(fixedGame(), alice.ID, at(0, 0))
	require.NoError(t, err)

	moves := history(t, state, alice.ID)
	require.Len(t, moves, 1)
	assert.Equal(t, at(0, 0), *moves[0].Regular)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Forest, current.BoardState[0][0].Landscape)
}

func TestSubmitMoveNormalizesRotations(t *testing.T) {
	move := at(4, 4)
	move.NumberOfCounterClockwiseRotations = 1

	state, err := SubmitMove(fixedGame(), alice.ID, move)
	require.NoError(t, err)

	stored := *history(t, state, alice.ID)[0].Regular
	assert.Equal(t, 3, stored.NumberOfClockwiseRotations)
	assert.Equal(t, 0, stored.NumberOfCounterClockwiseRotations)
}

func TestSubmitMoveRejects(t *testing.T) {
	state, err := SubmitMove(fixedGame(), alice.ID, at(0, 0))
	require.NoError(t, err)

	_, err = SubmitMove(state, alice.ID, at(0, 0))
	assert.ErrorIs(t, err, ErrPlacementConflict)

	_, err = SubmitMove(state, alice.ID, at(1, 1))
	assert.ErrorIs(t, err, ErrPlacementConflict, "mountains cannot be drawn over")

	_, err = SubmitMove(state, alice.ID, game.Move{SelectedShapeIndex: 0, SelectedLandscapeIndex: 3})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = SubmitMove(state, "nobody", at(2, 2))
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	assert.Len(t, history(t, state, alice.ID), 1, "rejected moves are not recorded")
}

func TestSubmitMoveAcceptsDiscardWhenNothingFits(t *testing.T) {
	free := game.BOARD_SIZE*game.BOARD_SIZE - len(game.MountainCoordinates)
	state := fixedGame(dots(free+2, 0))

	var moves []game.AnyMove
	board := game.NewBoard()
	for _, tile := range board.Tiles() {
		if tile.IsEmpty() {
			moves = append(moves, game.RegularMove(at(tile.Position.X, tile.Position.Y)))
		}
	}
	state = withHistory(state, alice.ID, moves...)

	state, err := SubmitMove(state, alice.ID, at(0, 0))
	require.NoError(t, err, "conflicts are accepted when the card cannot be placed")

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	assert.Len(t, current.MoveHistory, free+1)
	assert.Equal(t, free+len(game.MountainCoordinates), current.BoardState.CountFilled())
	require.NotNil(t, current.CardToPlace, "the discarded card was consumed")
	assert.Len(t, current.PlayedSeasonCards, free+2)
}

func TestSubmitMoveAppliesGorgon(t *testing.T) {
	gorgon := game.LandscapeCard{
		Name:           "Gorgon",
		LandscapeTypes: []game.LandscapeType{game.Monster},
		BaseShapes:     []game.BaseShape{dotShape},
		Monster:        game.Gorgon,
	}
	state := fixedGame(append([]game.LandscapeCard{dotCard(1), gorgon}, dots(8, 1)...))

	state, err := SubmitMove(state, alice.ID, at(0, 0))
	require.NoError(t, err)
	state, err = SubmitMove(state, alice.ID, at(1, 0))
	require.NoError(t, err)

	moves := history(t, state, alice.ID)
	require.Len(t, moves, 3)
	require.True(t, moves[2].IsMonsterEffect())
	assert.Equal(t, game.Gorgon, moves[2].Special.MonsterType)
	assert.Equal(t, []game.Coordinates{{X: 0, Y: 0}}, moves[2].Special.AffectedTiles)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	assert.True(t, current.BoardState[0][0].Destroyed)
	assert.Equal(t, 1, current.TimeProgress)
	assert.Len(t, current.PlayedSeasonCards, 3, "the effect does not consume a card")
	assert.Equal(t, dotCard(1), *current.CardToPlace)

	state, err = SubmitMove(state, alice.ID, at(5, 5))
	require.NoError(t, err)
	moves = history(t, state, alice.ID)
	require.Len(t, moves, 5)
	require.True(t, moves[4].IsMonsterEffect(), "the gorgon keeps acting after later placements")
	assert.Equal(t, []game.Coordinates{{X: 2, Y: 0}}, moves[4].Special.AffectedTiles)
}

func TestEndSeason(t *testing.T) {
	troll := monsterCard(t, game.Troll)
	state := fixedGame(append([]game.LandscapeCard{troll}, dots(8, 1)...))

	_, err := EndSeason(state, alice.ID)
	assert.ErrorIs(t, err, ErrSeasonNotOver)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	state, err = SubmitMove(state, alice.ID, firstMove(current))
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		state, err = SubmitMove(state, alice.ID, at(x, 10))
		require.NoError(t, err)
	}
	_, err = SubmitMove(state, alice.ID, at(10, 10))
	assert.ErrorIs(t, err, ErrNoCardToPlace)

	state, err = EndSeason(state, alice.ID)
	require.NoError(t, err)

	moves := history(t, state, alice.ID)
	require.Len(t, moves, 11)
	assert.True(t, moves[9].IsMonsterEffect(), "the troll acts before scoring")
	assert.Equal(t, game.Troll, moves[9].Special.MonsterType)
	assert.True(t, moves[10].IsSeasonChange())

	current, err = CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer", current.Season.Name)
	assert.True(t, current.IsStartOfSeason)
	require.Len(t, current.SeasonScores, 1)
	destroyed := moves[9].Special.AffectedTiles[0]
	assert.True(t, current.BoardState.Tile(destroyed).Destroyed)
}

func TestFullGame(t *testing.T) {
	state := NewGame(11, alice)

	for range game.Seasons {
		state = playSeason(t, state, alice.ID)
		var err error
		state, err = EndSeason(state, alice.ID)
		require.NoError(t, err)
	}

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)
	assert.True(t, current.IsEndOfGame)
	require.Len(t, current.SeasonScores, len(game.Seasons))

	total := 0
	for i, score := range current.SeasonScores {
		assert.Equal(t, game.Seasons[i].Name, score.Season.Name)
		total += score.TotalScore
	}
	assert.Equal(t, total, current.TotalScore())

	_, err = SubmitMove(state, alice.ID, at(0, 0))
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = EndSeason(state, alice.ID)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPreview(t *testing.T) {
	state, err := SubmitMove(fixedGame(), alice.ID, at(0, 0))
	require.NoError(t, err)

	temp, err := Preview(state, alice.ID, at(3, 3))
	require.NoError(t, err)
	assert.False(t, temp.HasConflict)
	assert.Empty(t, temp.ConflictedCellIndices)
	assert.Equal(t, game.Forest, temp.BoardState[3][3].Landscape)
	assert.Len(t, history(t, state, alice.ID), 1, "previews are not recorded")

	temp, err = Preview(state, alice.ID, at(0, 0))
	require.NoError(t, err)
	assert.True(t, temp.HasConflict)
	assert.Equal(t, []int{0}, temp.ConflictedCellIndices)
	assert.Equal(t, game.NoLandscape, temp.BoardState[3][3].Landscape)

	_, err = Preview(state, alice.ID, game.Move{SelectedShapeIndex: 7})
	assert.ErrorIs(t, err, ErrInvalidMove)
}
