package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeTransforms(t *testing.T) {
	t.Run("four rotations in either direction restore every catalog shape", func(t *testing.T) {
		for name, shape := range Shapes {
			clockwise, counterClockwise := shape, shape
			for i := 0; i < 4; i++ {
				clockwise = RotateClockwise(clockwise)
				counterClockwise = RotateCounterClockwise(counterClockwise)
			}
			require.True(t, AreShapesEqual(shape, clockwise), "%s should survive 4 clockwise rotations", name)
			require.True(t, AreShapesEqual(shape, counterClockwise), "%s should survive 4 counter-clockwise rotations", name)
		}
	})

	t.Run("clockwise then counter-clockwise and double mirror are identities", func(t *testing.T) {
		for name, shape := range Shapes {
			require.Equal(t, shape.FilledCells, RotateCounterClockwise(RotateClockwise(shape)).FilledCells, name)
			require.Equal(t, shape.FilledCells, Mirror(Mirror(shape)).FilledCells, name)
		}
	})

	t.Run("clockwise rotation swaps dimensions", func(t *testing.T) {
		rotated := RotateClockwise(Shapes["I_BIG"])

		require.Equal(t, 1, rotated.Width)
		require.Equal(t, 4, rotated.Height)
		require.Equal(t, []Coordinates{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, rotated.FilledCells)
	})

	t.Run("mirror keeps the coin flag and dimensions", func(t *testing.T) {
		mirrored := Mirror(Shapes["L_SMALL"])

		require.True(t, mirrored.HasCoin)
		require.Equal(t, 2, mirrored.Width)
		require.Equal(t, []Coordinates{{1, 0}, {1, 1}, {0, 1}}, mirrored.FilledCells)
	})

	t.Run("equality ignores cell order but not dimensions", func(t *testing.T) {
		a := BaseShape{Width: 2, Height: 1, FilledCells: []Coordinates{{0, 0}, {1, 0}}}
		b := BaseShape{Width: 2, Height: 1, FilledCells: []Coordinates{{1, 0}, {0, 0}}}
		c := BaseShape{Width: 1, Height: 2, FilledCells: []Coordinates{{0, 0}, {0, 1}}}

		require.True(t, AreShapesEqual(a, b))
		require.False(t, AreShapesEqual(a, c))
	})
}

func TestUniqueRotations(t *testing.T) {
	tests := map[string][]int{
		"O_SMALL": {0},
		"X":       {0},
		"PLUS":    {0},
		"I_BIG":   {0, 1},
		"S":       {0, 1},
		"T_SMALL": {0, 1, 2, 3},
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, want, UniqueRotations(Shapes[name]))
		})
	}
}

func TestHeroPositionFollowsShape(t *testing.T) {
	ranger := HeroCards[3]
	shape := LandscapeShape{BaseShape: ranger.BaseShapes[0], Type: Hero, HeroPosition: ranger.HeroPosition}

	for _, m := range []Move{
		{NumberOfClockwiseRotations: 1},
		{NumberOfClockwiseRotations: 2, IsFlipped: true},
		{NumberOfCounterClockwiseRotations: 1},
		{NumberOfCounterClockwiseRotations: 3, IsFlipped: true},
	} {
		transformed := ApplyMoveTransformations(shape, m)
		require.Contains(t, transformed.BaseShape.FilledCells, *transformed.HeroPosition,
			"Hero position should stay on a filled cell for %+v", m)
	}

	rotated := shape.RotateClockwise()
	require.Equal(t, Coordinates{X: 2, Y: 1}, *rotated.HeroPosition)
	require.Equal(t, Coordinates{X: 1, Y: 0}, *shape.HeroPosition, "Rotation should not mutate the source shape")
}
