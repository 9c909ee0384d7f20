package game

// HasConflict reports whether placing shape would conflict, without building the new board.
func HasConflict(b *Board, shape PlacedLandscapeShape) bool {
	for _, cell := range shape.BaseShape.FilledCells {
		if shape.isHeroStar(cell) {
			continue
		}
		tile := b.Tile(shape.Position.Add(cell))
		if tile == nil || tile.Landscape != NoLandscape {
			return true
		}
	}
	return false
}

type orientation struct {
	clockwise int
	flipped   bool
	shape     LandscapeShape
}

func sameOrientation(a, b LandscapeShape) bool {
	if !AreShapesEqual(a.BaseShape, b.BaseShape) {
		return false
	}
	if a.HeroPosition == nil || b.HeroPosition == nil {
		return a.HeroPosition == b.HeroPosition
	}
	return *a.HeroPosition == *b.HeroPosition
}

// orientations returns the distinct rotations and flips of shape.
func orientations(shape LandscapeShape) []orientation {
	var result []orientation
	for _, flipped := range []bool{false, true} {
		for rotations := 0; rotations < 4; rotations++ {
			candidate := ApplyMoveTransformations(shape, Move{NumberOfClockwiseRotations: rotations, IsFlipped: flipped})
			duplicate := false
			for _, o := range result {
				if sameOrientation(o.shape, candidate) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				result = append(result, orientation{clockwise: rotations, flipped: flipped, shape: candidate})
			}
		}
	}
	return result
}

// LegalMoves enumerates every conflict-free move for card on b: each shape choice
// (portal included), landscape, distinct orientation and position.
func LegalMoves(b *Board, card LandscapeCard) []Move {
	var moves []Move
	for shapeIndex := 0; shapeIndex < ShapeOptions(card); shapeIndex++ {
		landscapes := len(card.LandscapeTypes)
		if shapeIndex >= len(card.BaseShapes) {
			landscapes = len(PortalCard(primaryLandscape(card)).LandscapeTypes)
		}
		for landscapeIndex := 0; landscapeIndex < landscapes; landscapeIndex++ {
			base, err := LandscapeFromMove(Move{SelectedShapeIndex: shapeIndex, SelectedLandscapeIndex: landscapeIndex}, card)
			if err != nil {
				continue
			}
			for _, o := range orientations(base) {
				w, h := o.shape.BaseShape.Width, o.shape.BaseShape.Height
				for x := 1 - w; x < BOARD_SIZE; x++ {
					for y := 1 - h; y < BOARD_SIZE; y++ {
						position := Coordinates{X: x, Y: y}
						if HasConflict(b, o.shape.At(position)) {
							continue
						}
						moves = append(moves, Move{
							SelectedShapeIndex:         shapeIndex,
							SelectedLandscapeIndex:     landscapeIndex,
							Position:                   position,
							NumberOfClockwiseRotations: o.clockwise,
							IsFlipped:                  o.flipped,
						})
					}
				}
			}
		}
	}
	return moves
}

// CanPlaceCard reports whether any conflict-free placement of card exists.
func CanPlaceCard(b *Board, card LandscapeCard) bool {
	return len(LegalMoves(b, card)) > 0
}
