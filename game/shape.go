package game

// BaseShape is a polyomino: a bounding box and the cells it fills.
type BaseShape struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	FilledCells []Coordinates `json:"filledCells"`
	HasCoin     bool          `json:"hasCoin,omitempty"` // Placing the shape grants a coin
}

func (s BaseShape) Copy() BaseShape {
	cells := make([]Coordinates, len(s.FilledCells))
	copy(cells, s.FilledCells)
	s.FilledCells = cells
	return s
}

// RotateClockwise turns the shape a quarter turn clockwise.
func RotateClockwise(s BaseShape) BaseShape {
	cells := make([]Coordinates, len(s.FilledCells))
	for i, c := range s.FilledCells {
		cells[i] = Coordinates{X: s.Height - c.Y - 1, Y: c.X}
	}
	return BaseShape{Width: s.Height, Height: s.Width, FilledCells: cells, HasCoin: s.HasCoin}
}

// RotateCounterClockwise turns the shape a quarter turn counter-clockwise.
func RotateCounterClockwise(s BaseShape) BaseShape {
	cells := make([]Coordinates, len(s.FilledCells))
	for i, c := range s.FilledCells {
		cells[i] = Coordinates{X: c.Y, Y: s.Width - c.X - 1}
	}
	return BaseShape{Width: s.Height, Height: s.Width, FilledCells: cells, HasCoin: s.HasCoin}
}

// Mirror flips the shape along its vertical axis.
func Mirror(s BaseShape) BaseShape {
	cells := make([]Coordinates, len(s.FilledCells))
	for i, c := range s.FilledCells {
		cells[i] = Coordinates{X: s.Width - c.X - 1, Y: c.Y}
	}
	return BaseShape{Width: s.Width, Height: s.Height, FilledCells: cells, HasCoin: s.HasCoin}
}

// AreShapesEqual compares dimensions and filled cells, ignoring cell order.
func AreShapesEqual(a, b BaseShape) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	return containsAll(a.FilledCells, b.FilledCells) && containsAll(b.FilledCells, a.FilledCells)
}

func containsAll(cells, other []Coordinates) bool {
	set := make(map[Coordinates]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	for _, c := range other {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}

// UniqueRotations returns the number of clockwise rotations (0-3) that yield distinct
// shapes, stopping as soon as a rotation repeats the original.
func UniqueRotations(s BaseShape) []int {
	rotations := []int{0}
	rotated := s
	for i := 1; i < 4; i++ {
		rotated = RotateClockwise(rotated)
		if AreShapesEqual(rotated, s) {
			break
		}
		rotations = append(rotations, i)
	}
	return rotations
}

// LandscapeShape is a base shape bound to the landscape it will draw.
type LandscapeShape struct {
	BaseShape    BaseShape     `json:"baseShape"`
	Type         LandscapeType `json:"type"`
	HeroPosition *Coordinates  `json:"heroPosition,omitempty"` // Active cell of a hero shape
	MonsterType  MonsterType   `json:"monsterType,omitempty"`
}

// PlacedLandscapeShape is a landscape shape anchored at a board position.
type PlacedLandscapeShape struct {
	LandscapeShape
	Position Coordinates `json:"position"`
}

func (s LandscapeShape) RotateClockwise() LandscapeShape {
	rotated := RotateClockwise(s.BaseShape)
	if s.HeroPosition != nil {
		s.HeroPosition = &Coordinates{X: rotated.Width - s.HeroPosition.Y - 1, Y: s.HeroPosition.X}
	}
	s.BaseShape = rotated
	return s
}

func (s LandscapeShape) RotateCounterClockwise() LandscapeShape {
	rotated := RotateCounterClockwise(s.BaseShape)
	if s.HeroPosition != nil {
		s.HeroPosition = &Coordinates{X: s.HeroPosition.Y, Y: rotated.Height - s.HeroPosition.X - 1}
	}
	s.BaseShape = rotated
	return s
}

func (s LandscapeShape) Mirror() LandscapeShape {
	mirrored := Mirror(s.BaseShape)
	if s.HeroPosition != nil {
		s.HeroPosition = &Coordinates{X: mirrored.Width - s.HeroPosition.X - 1, Y: s.HeroPosition.Y}
	}
	s.BaseShape = mirrored
	return s
}

// At anchors the shape at position.
func (s LandscapeShape) At(position Coordinates) PlacedLandscapeShape {
	return PlacedLandscapeShape{LandscapeShape: s, Position: position}
}

// isHeroStar reports whether the shape cell is a decorative hero cell.
func (s LandscapeShape) isHeroStar(cell Coordinates) bool {
	if s.Type != Hero {
		return false
	}
	return s.HeroPosition == nil || *s.HeroPosition != cell
}
