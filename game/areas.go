package game

// Area is a maximal 4-connected group of tiles matching one landscape predicate.
type Area struct {
	Landscape LandscapeType `json:"landscape"`
	Tiles     []BoardTile   `json:"tiles"`
}

// Positions returns the coordinates of the area's tiles.
func (a Area) Positions() []Coordinates {
	positions := make([]Coordinates, len(a.Tiles))
	for i, t := range a.Tiles {
		positions[i] = t.Position
	}
	return positions
}

// BoundingBox returns the smallest and largest coordinates covered by the area.
func (a Area) BoundingBox() (lo, hi Coordinates) {
	if len(a.Tiles) == 0 {
		return lo, hi
	}
	lo, hi = a.Tiles[0].Position, a.Tiles[0].Position
	for _, t := range a.Tiles[1:] {
		p := t.Position
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return lo, hi
}

// GetIndividualAreas flood fills the board and returns one area per connected group
// of undestroyed tiles of the given landscape. NoLandscape groups empty tiles.
// Seeds are taken in board order (x outer, y inner).
func GetIndividualAreas(b *Board, landscape LandscapeType) []Area {
	var areas []Area
	var visited [BOARD_SIZE][BOARD_SIZE]bool

	for x := 0; x < BOARD_SIZE; x++ {
		for y := 0; y < BOARD_SIZE; y++ {
			if visited[x][y] || !b[x][y].Is(landscape) {
				continue
			}

			area := Area{Landscape: landscape}
			queue := []Coordinates{{X: x, Y: y}}
			visited[x][y] = true
			for len(queue) > 0 {
				current := queue[0]
				queue = queue[1:]
				area.Tiles = append(area.Tiles, *b.Tile(current))

				for _, n := range Neighbours(current) {
					if visited[n.X][n.Y] || !b.Tile(n).Is(landscape) {
						continue
					}
					visited[n.X][n.Y] = true
					queue = append(queue, n)
				}
			}
			areas = append(areas, area)
		}
	}

	return areas
}
