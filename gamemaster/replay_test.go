package gamemaster

import (
	"testing"

	"cartographers/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHistory(state GameState, playerID string, moves ...game.AnyMove) GameState {
	for _, m := range moves {
		state = AddMoveToGame(state, m, playerID)
	}
	return state
}

func TestNewPlayerState(t *testing.T) {
	state := NewGame(3, alice)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, game.NewBoard(), current.BoardState)
	require.NotNil(t, current.Season)
	assert.Equal(t, "Spring", current.Season.Name)
	assert.Equal(t, state.Goals[:2], current.SeasonGoals)
	assert.True(t, current.IsStartOfSeason)
	assert.False(t, current.IsEndOfSeason)
	assert.False(t, current.IsEndOfGame)
	require.NotNil(t, current.CardToPlace)
	assert.Equal(t, state.SeasonSetups[0].CardDeck[0], *current.CardToPlace)
	assert.Equal(t, state.SeasonSetups[0].CardDeck[:1], current.PlayedSeasonCards)
	assert.Equal(t, 0, current.TimeProgress)
	assert.Empty(t, current.SeasonScores)
	assert.Len(t, current.Scores, game.CATEGORY_GOALS+2)
	assert.Equal(t, 0, current.TotalScore())
}

func TestReplayAdvancesThroughDeck(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(0, 2)),
		game.RegularMove(at(0, 4)),
	)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	for _, y := range []int{0, 2, 4} {
		assert.Equal(t, game.Forest, current.BoardState[0][y].Landscape)
	}
	assert.Equal(t, 3, current.TimeProgress)
	assert.False(t, current.IsStartOfSeason)
	assert.Len(t, current.PlayedSeasonCards, 4)
	assert.Len(t, current.AllPlayedCards, 4)
	assert.Len(t, current.MoveHistory, 3)
}

func TestReplayDiscardsConflictingPlacement(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(1, 1)),
	)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, current.BoardState.CountFilled()-len(game.MountainCoordinates))
	assert.Equal(t, game.Mountain, current.BoardState[1][1].Landscape)
	assert.Equal(t, 3, current.TimeProgress, "discarded cards are still consumed")
}

func TestReplayPrefix(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(2, 0)),
		game.RegularMove(at(4, 0)),
		game.RegularMove(at(6, 0)),
	)
	ps, err := state.Player(alice.ID)
	require.NoError(t, err)

	for n := 0; n <= len(ps.MoveHistory); n++ {
		truncated := UpdatePlayerState(state, PlayerGameState{Player: alice, MoveHistory: ps.MoveHistory[:n]})
		want, err := CurrentPlayerState(truncated, alice.ID)
		require.NoError(t, err)

		assert.Equal(t, want, PlayerStateToCurrentState(state, ps, n), "prefix %d", n)
	}
	assert.Equal(t, PlayerStateToCurrentState(state, ps, -1), PlayerStateToCurrentState(state, ps, 100))
}

func TestEndOfSeasonByTime(t *testing.T) {
	deck := append(dots(3, 2), dots(4, 1)...)
	state := withHistory(fixedGame(deck), alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(0, 2)),
		game.RegularMove(at(0, 4)),
		game.RegularMove(at(0, 6)),
	)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 7, current.TimeProgress)
	assert.False(t, current.IsEndOfSeason)

	state = AddMoveToGame(state, game.RegularMove(at(0, 8)), alice.ID)
	current, err = CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 8, current.TimeProgress)
	assert.True(t, current.IsEndOfSeason)
	assert.Nil(t, current.CardToPlace)
	assert.Len(t, current.PlayedSeasonCards, 5)
}

func TestSeasonChangeScoresAndAdvances(t *testing.T) {
	var moves []game.AnyMove
	for x := 0; x < 8; x++ {
		moves = append(moves, game.RegularMove(at(x, 10)))
	}
	state := withHistory(fixedGame(), alice.ID, append(moves, game.SeasonChange())...)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	require.Len(t, current.SeasonScores, 1)
	assert.Equal(t, "Spring", current.SeasonScores[0].Season.Name)
	assert.Equal(t, "Summer", current.Season.Name)
	assert.Equal(t, state.Goals[1:3], current.SeasonGoals)
	assert.True(t, current.IsStartOfSeason)
	assert.Equal(t, 0, current.TimeProgress)
	assert.Len(t, current.AllPlayedCards, 9)
	assert.Equal(t, current.SeasonScores[0].TotalScore, current.TotalScore())
}

func TestWinterGoalsKeepGameOrder(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID, game.SeasonChange(), game.SeasonChange(), game.SeasonChange())

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	require.Equal(t, "Winter", current.Season.Name)
	assert.Equal(t, []game.Goal{state.Goals[0], state.Goals[3]}, current.SeasonGoals)
}

func TestEndOfGame(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID, game.SeasonChange(), game.SeasonChange(), game.SeasonChange(), game.SeasonChange())

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.True(t, current.IsEndOfGame)
	assert.True(t, current.IsEndOfSeason)
	assert.Nil(t, current.Season)
	assert.Nil(t, current.CardToPlace)
	assert.Empty(t, current.SeasonGoals)
	assert.Len(t, current.SeasonScores, len(game.Seasons))
}

func TestFogOfWar(t *testing.T) {
	state, err := AddPlayer(fixedGame(), bob)
	require.NoError(t, err)
	state = withHistory(state, alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(at(0, 2)),
		game.RegularMove(at(0, 4)),
	)
	state = withHistory(state, bob.ID, game.RegularMove(at(5, 5)))

	seenByBob := StateToCurrentState(state, bob.ID)
	require.Len(t, seenByBob.PlayerStates, 2)
	assert.Len(t, seenByBob.PlayerStates[0].MoveHistory, 1, "alice is cut to bob's progress")
	assert.Len(t, seenByBob.PlayerStates[1].MoveHistory, 1)

	seenByAlice := StateToCurrentState(state, alice.ID)
	assert.Len(t, seenByAlice.PlayerStates[0].MoveHistory, 3)
	assert.Len(t, seenByAlice.PlayerStates[1].MoveHistory, 1)

	for _, ps := range StateToCurrentState(state, "stranger").PlayerStates {
		assert.Empty(t, ps.MoveHistory)
		assert.Equal(t, game.NewBoard(), ps.BoardState)
	}

	finished := withHistory(state, bob.ID, game.SeasonChange(), game.SeasonChange(), game.SeasonChange(), game.SeasonChange())
	finished = withHistory(finished, alice.ID, game.RegularMove(at(0, 6)), game.RegularMove(at(0, 8)))
	seenByBob = StateToCurrentState(finished, bob.ID)
	assert.Len(t, seenByBob.PlayerStates[0].MoveHistory, 5, "players who finished see everything")
}

func TestReplayStopsWhenDecksRunOut(t *testing.T) {
	one := []game.LandscapeCard{dotCard(1)}
	state := withHistory(fixedGame(one, one, one, one), alice.ID,
		game.RegularMove(at(0, 0)),
		game.SeasonChange(),
		game.RegularMove(at(0, 2)),
		game.RegularMove(at(0, 4)),
		game.RegularMove(at(0, 6)),
		game.RegularMove(at(0, 8)),
	)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	for _, y := range []int{0, 2, 4, 6} {
		assert.Equal(t, game.Forest, current.BoardState[0][y].Landscape, "y=%d", y)
	}
	assert.True(t, current.BoardState[0][8].IsEmpty(), "the move without a card is not replayed")
	require.Len(t, current.SeasonScores, 1)
	assert.Equal(t, "Spring", current.SeasonScores[0].Season.Name)
	assert.True(t, current.IsEndOfSeason)
	assert.Nil(t, current.CardToPlace)
}

func TestReplayStopsAtInvalidMove(t *testing.T) {
	state := withHistory(fixedGame(), alice.ID,
		game.RegularMove(at(0, 0)),
		game.RegularMove(game.Move{SelectedLandscapeIndex: 5}),
		game.RegularMove(at(0, 4)),
	)

	current, err := CurrentPlayerState(state, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, game.Forest, current.BoardState[0][0].Landscape)
	assert.True(t, current.BoardState[0][4].IsEmpty())
	assert.Len(t, current.MoveHistory, 3)
}

func TestReplayWithoutGoalsOrDecks(t *testing.T) {
	state := GameState{PlayerStates: []PlayerGameState{{Player: Player{ID: "a"}, MoveHistory: []game.AnyMove{}}}}

	current := StateToCurrentState(state, "a")

	require.Len(t, current.PlayerStates, 1)
	view := current.PlayerStates[0]
	assert.Len(t, view.Scores, 2, "only the coin and monster goals score")
	assert.Equal(t, 0, view.Coins)
	assert.Empty(t, view.SeasonGoals)
	assert.Nil(t, view.CardToPlace)
}
