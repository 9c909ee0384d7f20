package game

// BOARD_SIZE is the width and height of every player board.
const BOARD_SIZE = 11

// Coordinates address a cell on the board or inside a shape's bounding box, 0-based.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinates) Add(other Coordinates) Coordinates {
	return Coordinates{X: c.X + other.X, Y: c.Y + other.Y}
}

// InBounds reports whether c lies on the board.
func (c Coordinates) InBounds() bool {
	return c.X >= 0 && c.X < BOARD_SIZE && c.Y >= 0 && c.Y < BOARD_SIZE
}

type LandscapeType string

const (
	Forest   LandscapeType = "forest"
	Village  LandscapeType = "village"
	Field    LandscapeType = "field"
	Water    LandscapeType = "water"
	Mountain LandscapeType = "mountain"
	Monster  LandscapeType = "monster"
	Hero     LandscapeType = "hero"

	// NoLandscape selects empty tiles where a landscape filter is expected.
	NoLandscape LandscapeType = ""
)

// BasicLandscapes are the four landscape types a player can draw freely.
var BasicLandscapes = []LandscapeType{Forest, Village, Field, Water}

type MonsterType string

const (
	Dragon MonsterType = "D"
	Troll  MonsterType = "T"
	Zombie MonsterType = "Z"
	Gorgon MonsterType = "G"
)

var MonsterTypes = []MonsterType{Dragon, Troll, Zombie, Gorgon}
