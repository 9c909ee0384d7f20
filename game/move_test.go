package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveHistoryDecoding(t *testing.T) {
	data := `[
		{"selectedShapeIndex":1,"selectedLandscapeIndex":0,"position":{"x":3,"y":4},"numberOfClockwiseRotations":1,"numberOfCounterClockwiseRotations":0,"isFlipped":true},
		{"action":"monster_effect","monsterType":"G","affectedTiles":[{"x":2,"y":2}]},
		{"action":"change_of_season"}
	]`

	var history []AnyMove
	require.NoError(t, json.Unmarshal([]byte(data), &history))

	require.Len(t, history, 3)
	require.True(t, history[0].IsRegular())
	require.Equal(t, Coordinates{X: 3, Y: 4}, history[0].Regular.Position)
	require.True(t, history[0].Regular.IsFlipped)
	require.True(t, history[1].IsMonsterEffect())
	require.Equal(t, Gorgon, history[1].Special.MonsterType)
	require.True(t, history[2].IsSeasonChange())

	encoded, err := json.Marshal(history[2])
	require.NoError(t, err)
	require.JSONEq(t, `{"action":"change_of_season"}`, string(encoded))

	_, err = json.Marshal(AnyMove{})
	require.Error(t, err)
}

func TestNormalizeRotations(t *testing.T) {
	tests := []struct {
		clockwise, counterClockwise, want int
	}{
		{0, 0, 0},
		{5, 3, 2},
		{0, 1, 3},
		{2, 6, 0},
	}
	for _, tt := range tests {
		got := NormalizeRotations(Move{NumberOfClockwiseRotations: tt.clockwise, NumberOfCounterClockwiseRotations: tt.counterClockwise})
		require.Equal(t, tt.want, got.NumberOfClockwiseRotations, "%d cw / %d ccw", tt.clockwise, tt.counterClockwise)
		require.Zero(t, got.NumberOfCounterClockwiseRotations)
	}

	shape := LandscapeShape{BaseShape: Shapes["T_SMALL"], Type: Field}
	raw := Move{NumberOfClockwiseRotations: 3, NumberOfCounterClockwiseRotations: 2, IsFlipped: true}
	require.Equal(t,
		ApplyMoveTransformations(shape, raw).BaseShape,
		ApplyMoveTransformations(shape, NormalizeRotations(raw)).BaseShape)
}

func TestLandscapeFromMove(t *testing.T) {
	ranch := LandscapeCards[1]

	t.Run("selects the card's own shape", func(t *testing.T) {
		shape, err := LandscapeFromMove(Move{SelectedShapeIndex: 1}, ranch)

		require.NoError(t, err)
		require.Equal(t, Field, shape.Type)
		require.True(t, AreShapesEqual(Shapes["S"], shape.BaseShape))
	})

	t.Run("overflowing the shape index selects the portal", func(t *testing.T) {
		shape, err := LandscapeFromMove(Move{SelectedShapeIndex: 2, SelectedLandscapeIndex: 3}, ranch)

		require.NoError(t, err)
		require.Equal(t, Water, shape.Type)
		require.Len(t, shape.BaseShape.FilledCells, 1)
	})

	t.Run("monster portals keep the monster type", func(t *testing.T) {
		troll := MonsterCards[1]

		shape, err := LandscapeFromMove(Move{SelectedShapeIndex: 1}, troll)

		require.NoError(t, err)
		require.Equal(t, Monster, shape.Type)
		require.Equal(t, Troll, shape.MonsterType)
	})

	t.Run("rejects selections outside the card", func(t *testing.T) {
		_, err := LandscapeFromMove(Move{SelectedLandscapeIndex: 1}, ranch)
		require.Error(t, err)

		_, err = LandscapeFromMove(Move{SelectedShapeIndex: 3}, ranch)
		require.Error(t, err)

		_, err = LandscapeFromMove(Move{SelectedShapeIndex: -1}, ranch)
		require.Error(t, err)

		_, err = LandscapeFromMove(Move{SelectedShapeIndex: len(ranch.BaseShapes), SelectedLandscapeIndex: -1}, ranch)
		require.Error(t, err, "the portal rejects negative landscapes")
	})

	t.Run("applies rotations before the flip", func(t *testing.T) {
		shape, err := LandscapeFromMove(Move{NumberOfClockwiseRotations: 1, IsFlipped: true}, ranch)

		require.NoError(t, err)
		require.Equal(t, Mirror(RotateClockwise(Shapes["TWO_DOTS"])).FilledCells, shape.BaseShape.FilledCells)
	})
}
