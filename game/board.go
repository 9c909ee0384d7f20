package game

// BoardTile is one cell of a player board.
type BoardTile struct {
	Position     Coordinates   `json:"position"`
	Landscape    LandscapeType `json:"landscape,omitempty"`
	MonsterType  MonsterType   `json:"monsterType,omitempty"`
	Destroyed    bool          `json:"destroyed,omitempty"`
	HeroStar     bool          `json:"heroStar,omitempty"` // Decorative hero cell, never carries a landscape of its own
	HasCoin      bool          `json:"hasCoin,omitempty"`
	WasScoreCoin bool          `json:"wasScoreCoin,omitempty"`
	Conflicted   bool          `json:"conflicted,omitempty"`
}

// IsEmpty reports whether nothing has been drawn on or destroyed at the tile.
func (t BoardTile) IsEmpty() bool {
	return t.Landscape == NoLandscape && !t.Destroyed
}

// IsFilled is the complement of IsEmpty.
func (t BoardTile) IsFilled() bool {
	return !t.IsEmpty()
}

// Is reports whether the tile matches the area predicate for landscape:
// same landscape and not destroyed. NoLandscape matches empty tiles.
func (t BoardTile) Is(landscape LandscapeType) bool {
	return t.Landscape == landscape && !t.Destroyed
}

// IsLiveMonster reports whether the tile is an undestroyed monster tile.
func (t BoardTile) IsLiveMonster() bool {
	return t.Is(Monster)
}

// Board is indexed [x][y]. Being an array, assigning a Board copies every tile,
// so functions taking a Board by value never mutate the caller's board.
type Board [BOARD_SIZE][BOARD_SIZE]BoardTile

// MountainCoordinates are the fixed mountain tiles of every new board.
var MountainCoordinates = []Coordinates{
	{X: 1, Y: 1},
	{X: 3, Y: 5},
	{X: 5, Y: 9},
	{X: 8, Y: 3},
	{X: 9, Y: 8},
}

// NewBoard returns an empty board with the five mountains, each holding a coin.
func NewBoard() Board {
	var b Board
	for x := 0; x < BOARD_SIZE; x++ {
		for y := 0; y < BOARD_SIZE; y++ {
			b[x][y] = BoardTile{Position: Coordinates{X: x, Y: y}}
		}
	}
	for _, c := range MountainCoordinates {
		b[c.X][c.Y].Landscape = Mountain
		b[c.X][c.Y].HasCoin = true
	}
	return b
}

// Tile returns a pointer into the board, or nil when c is off-board.
func (b *Board) Tile(c Coordinates) *BoardTile {
	if !c.InBounds() {
		return nil
	}
	return &b[c.X][c.Y]
}

var neighbourOffsets = []Coordinates{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

// Neighbours returns the in-board von Neumann neighbours of c: left, right, up, down.
func Neighbours(c Coordinates) []Coordinates {
	result := make([]Coordinates, 0, 4)
	for _, o := range neighbourOffsets {
		n := c.Add(o)
		if n.InBounds() {
			result = append(result, n)
		}
	}
	return result
}

// Tiles returns every tile in board order, x outer and y inner.
func (b *Board) Tiles() []BoardTile {
	tiles := make([]BoardTile, 0, BOARD_SIZE*BOARD_SIZE)
	for x := 0; x < BOARD_SIZE; x++ {
		for y := 0; y < BOARD_SIZE; y++ {
			tiles = append(tiles, b[x][y])
		}
	}
	return tiles
}

// isSurrounded reports whether all four sides of c are filled; the board edge counts as filled.
func (b *Board) isSurrounded(c Coordinates) bool {
	for _, n := range Neighbours(c) {
		if b.Tile(n).IsEmpty() {
			return false
		}
	}
	return true
}

func (b *Board) hasEmptyNeighbour(c Coordinates) bool {
	return !b.isSurrounded(c)
}

// CountFilled counts tiles that are not empty.
func (b *Board) CountFilled() int {
	count := 0
	for x := 0; x < BOARD_SIZE; x++ {
		for y := 0; y < BOARD_SIZE; y++ {
			if b[x][y].IsFilled() {
				count++
			}
		}
	}
	return count
}
