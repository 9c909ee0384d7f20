package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func dot(landscape LandscapeType, monsterType MonsterType) LandscapeShape {
	return LandscapeShape{BaseShape: Shapes["DOT"], Type: landscape, MonsterType: monsterType}
}

func place(t *testing.T, b Board, shape LandscapeShape, at Coordinates) Board {
	t.Helper()
	result := TryPlaceShapeOnBoard(b, shape.At(at))
	require.Empty(t, result.ConflictedCellIndices, "placement at %+v should not conflict", at)
	return result.UpdatedBoard
}

func knight() LandscapeShape {
	card := HeroCards[0]
	return LandscapeShape{BaseShape: card.BaseShapes[0], Type: Hero, HeroPosition: card.HeroPosition}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, 5, b.CountFilled())
	for _, c := range MountainCoordinates {
		require.Equal(t, Mountain, b.Tile(c).Landscape)
		require.True(t, b.Tile(c).HasCoin)
	}
	require.Equal(t, Coordinates{X: 7, Y: 2}, b[7][2].Position)
	require.Nil(t, b.Tile(Coordinates{X: BOARD_SIZE, Y: 0}))
}

func TestTryPlaceShapeOnBoard(t *testing.T) {
	t.Run("placing on empty tiles draws the landscape", func(t *testing.T) {
		b := NewBoard()
		shape := LandscapeShape{BaseShape: Shapes["O_SMALL"], Type: Forest}

		result := TryPlaceShapeOnBoard(b, shape.At(Coordinates{X: 5, Y: 5}))

		require.Empty(t, result.ConflictedCellIndices)
		for _, c := range []Coordinates{{5, 5}, {6, 5}, {5, 6}, {6, 6}} {
			require.Equal(t, Forest, result.UpdatedBoard.Tile(c).Landscape)
		}
		require.True(t, b.Tile(Coordinates{X: 5, Y: 5}).IsEmpty(), "Input board should not change")
	})

	t.Run("placement is deterministic", func(t *testing.T) {
		b := NewBoard()
		shape := LandscapeShape{BaseShape: Shapes["W"], Type: Village}.At(Coordinates{X: 2, Y: 2})

		require.Equal(t, TryPlaceShapeOnBoard(b, shape), TryPlaceShapeOnBoard(b, shape))
	})

	t.Run("placing over filled tiles conflicts on every cell", func(t *testing.T) {
		shape := LandscapeShape{BaseShape: Shapes["O_SMALL"], Type: Field}
		b := place(t, NewBoard(), shape, Coordinates{X: 5, Y: 5})

		result := TryPlaceShapeOnBoard(b, LandscapeShape{BaseShape: Shapes["O_SMALL"], Type: Water}.At(Coordinates{X: 5, Y: 5}))

		require.Equal(t, []int{0, 1, 2, 3}, result.ConflictedCellIndices)
		require.True(t, result.UpdatedBoard[5][5].Conflicted)
		require.Equal(t, Field, result.UpdatedBoard[5][5].Landscape, "Conflicted tiles keep their landscape")
	})

	t.Run("cells off the board conflict", func(t *testing.T) {
		shape := LandscapeShape{BaseShape: Shapes["I_BIG"], Type: Water}

		result := TryPlaceShapeOnBoard(NewBoard(), shape.At(Coordinates{X: 9, Y: 0}))

		require.Equal(t, []int{2, 3}, result.ConflictedCellIndices)
	})

	t.Run("mountains conflict", func(t *testing.T) {
		result := TryPlaceShapeOnBoard(NewBoard(), dot(Forest, "").At(Coordinates{X: 1, Y: 1}))

		require.Equal(t, []int{0}, result.ConflictedCellIndices)
		require.Equal(t, Mountain, result.UpdatedBoard[1][1].Landscape)
	})
}

func TestHeroPlacement(t *testing.T) {
	t.Run("only the hero cell carries a landscape", func(t *testing.T) {
		b := place(t, NewBoard(), knight(), Coordinates{X: 4, Y: 4})

		require.Equal(t, Hero, b[5][5].Landscape)
		require.False(t, b[5][5].HeroStar)
		for _, c := range []Coordinates{{4, 4}, {6, 4}, {4, 6}, {6, 6}} {
			require.True(t, b.Tile(c).HeroStar)
			require.Equal(t, NoLandscape, b.Tile(c).Landscape)
		}
	})

	t.Run("hero stars never conflict nor overwrite", func(t *testing.T) {
		b := place(t, NewBoard(), dot(Forest, ""), Coordinates{X: 4, Y: 4})

		b = place(t, b, knight(), Coordinates{X: 4, Y: 4})

		require.Equal(t, Forest, b[4][4].Landscape)
		require.True(t, b[4][4].HeroStar)
	})

	t.Run("hero stars may hang off the board and cover mountains", func(t *testing.T) {
		result := TryPlaceShapeOnBoard(NewBoard(), knight().At(Coordinates{X: -1, Y: -1}))

		require.Empty(t, result.ConflictedCellIndices)
		require.Equal(t, Hero, result.UpdatedBoard[0][0].Landscape)
		require.Equal(t, Mountain, result.UpdatedBoard[1][1].Landscape)
	})

	t.Run("hero stars destroy monster tiles", func(t *testing.T) {
		b := place(t, NewBoard(), dot(Monster, Troll), Coordinates{X: 4, Y: 4})

		b = place(t, b, knight(), Coordinates{X: 4, Y: 4})

		require.True(t, b[4][4].Destroyed)
		require.Equal(t, Troll, b[4][4].MonsterType)
		require.Equal(t, 0, GetMonsterScore(&b).Score)
	})

	t.Run("the hero cell conflicts like any landscape", func(t *testing.T) {
		result := TryPlaceShapeOnBoard(NewBoard(), knight().At(Coordinates{X: 0, Y: 0}))

		require.Equal(t, []int{2}, result.ConflictedCellIndices)
	})
}

func TestCoins(t *testing.T) {
	t.Run("surrounding a mountain collects its coin", func(t *testing.T) {
		b := NewBoard()
		for _, c := range []Coordinates{{0, 1}, {2, 1}, {1, 0}} {
			b = place(t, b, dot(Field, ""), c)
		}
		require.True(t, b[1][1].HasCoin)

		b = place(t, b, dot(Field, ""), Coordinates{X: 1, Y: 2})

		require.False(t, b[1][1].HasCoin)
		require.True(t, b[1][1].WasScoreCoin)
		require.Equal(t, 1, GetCoinScore(&b).Score)
	})

	t.Run("coin shapes grant a coin on their first cell", func(t *testing.T) {
		shape := LandscapeShape{BaseShape: Shapes["TWO_DOTS"], Type: Field}

		b := place(t, NewBoard(), shape, Coordinates{X: 4, Y: 4})

		require.True(t, b[4][4].WasScoreCoin)
		require.False(t, b[6][4].WasScoreCoin)
		require.Equal(t, 1, GetCoinScore(&b).Score)
	})

	t.Run("conflicting coin shapes grant nothing", func(t *testing.T) {
		shape := LandscapeShape{BaseShape: Shapes["TWO_DOTS"], Type: Field}

		result := TryPlaceShapeOnBoard(NewBoard(), shape.At(Coordinates{X: 1, Y: 1}))

		require.NotEmpty(t, result.ConflictedCellIndices)
		require.Equal(t, 0, GetCoinScore(&result.UpdatedBoard).Score)
	})
}

func TestDragonFight(t *testing.T) {
	lair := LandscapeShape{BaseShape: Shapes["O_SMALL"], Type: Monster, MonsterType: Dragon}
	b := place(t, NewBoard(), lair, Coordinates{X: 4, Y: 4})

	status := GetDragonFightStatus(&b)
	require.False(t, status.IsDefeated)
	require.Len(t, status.UndefeatedTiles, 4)
	require.True(t, b[4][4].HasCoin, "The first undefeated dragon tile holds the pending coin")
	require.Equal(t, -7, GetMonsterScore(&b).Score)

	border := []Coordinates{{3, 4}, {6, 4}, {6, 5}, {4, 3}, {5, 3}, {4, 6}, {5, 6}}
	for _, c := range border[:len(border)-1] {
		b = place(t, b, dot(Forest, ""), c)
		holders := 0
		for _, tile := range b.Tiles() {
			if tile.MonsterType == Dragon && tile.HasCoin {
				holders++
			}
		}
		require.Equal(t, 1, holders, "Exactly one dragon tile holds the coin while undefeated")
	}
	require.Equal(t, 0, GetCoinScore(&b).Score)

	b = place(t, b, dot(Forest, ""), border[len(border)-1])

	status = GetDragonFightStatus(&b)
	require.True(t, status.IsDefeated)
	require.Len(t, status.DefeatedTiles, 4)
	require.Equal(t, 3, GetCoinScore(&b).Score, "A defeated dragon pays three coins")
	require.Equal(t, 0, GetMonsterScore(&b).Score)
	for _, tile := range b.Tiles() {
		require.False(t, tile.MonsterType == Dragon && tile.HasCoin)
	}
}

func TestDragonDrawnEnclosed(t *testing.T) {
	b := place(t, NewBoard(), dot(Forest, ""), Coordinates{X: 1, Y: 0})
	b = place(t, b, dot(Forest, ""), Coordinates{X: 0, Y: 1})

	b = place(t, b, dot(Monster, Dragon), Coordinates{X: 0, Y: 0})

	require.True(t, GetDragonFightStatus(&b).IsDefeated)
	require.True(t, b[0][0].WasScoreCoin, "The coin is paid on the placement itself")
	require.False(t, b[0][0].HasCoin)
	require.Equal(t, 3, GetCoinScore(&b).Score)

	b = place(t, b, dot(Forest, ""), Coordinates{X: 7, Y: 7})
	require.Equal(t, 3, GetCoinScore(&b).Score, "A defeated dragon pays only once")
}
