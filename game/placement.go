package game

import "slices"

// PlaceResult holds the board after a placement attempt and the indices (into the
// shape's FilledCells) of every cell that could not be placed.
type PlaceResult struct {
	UpdatedBoard          Board `json:"updatedBoard"`
	ConflictedCellIndices []int `json:"conflictedCellIndices"`
}

func (r PlaceResult) HasConflict() bool {
	return len(r.ConflictedCellIndices) > 0
}

// TryPlaceShapeOnBoard draws shape onto a copy of board. Conflicts are reported, not
// prevented: callers must not commit a result with conflicts.
func TryPlaceShapeOnBoard(board Board, shape PlacedLandscapeShape) PlaceResult {
	updated := board
	conflicts := []int{}

	for i, cell := range shape.BaseShape.FilledCells {
		heroStar := shape.isHeroStar(cell)
		tile := updated.Tile(shape.Position.Add(cell))
		if tile == nil {
			if !heroStar {
				conflicts = append(conflicts, i)
			}
			continue
		}

		if !heroStar && shape.MonsterType != "" {
			tile.MonsterType = shape.MonsterType
		}

		if tile.Landscape != NoLandscape && !heroStar {
			tile.Conflicted = true
			conflicts = append(conflicts, i)
			continue
		}

		if !heroStar {
			tile.Landscape = shape.Type
		}
		tile.HeroStar = tile.HeroStar || heroStar

		if tile.Landscape == Monster && tile.HeroStar {
			tile.Destroyed = true
		}

		collectMountainCoins(&updated, tile.Position)
	}

	if len(conflicts) == 0 {
		if shape.BaseShape.HasCoin {
			awardShapeCoin(&updated, shape)
		}
		updated = UpdateDragonFight(board, updated)
	}

	return PlaceResult{UpdatedBoard: updated, ConflictedCellIndices: conflicts}
}

// collectMountainCoins converts the coin of every mountain next to c that is now surrounded.
func collectMountainCoins(b *Board, c Coordinates) {
	for _, n := range Neighbours(c) {
		tile := b.Tile(n)
		if tile.Landscape != Mountain || !tile.HasCoin {
			continue
		}
		if b.isSurrounded(n) {
			tile.HasCoin = false
			tile.WasScoreCoin = true
		}
	}
}

// awardShapeCoin marks the first placed cell of a coin shape as a scored coin.
func awardShapeCoin(b *Board, shape PlacedLandscapeShape) {
	for _, cell := range shape.BaseShape.FilledCells {
		if tile := b.Tile(shape.Position.Add(cell)); tile != nil {
			tile.WasScoreCoin = true
			return
		}
	}
}

// DragonFightStatus classifies the dragon tiles of a board.
type DragonFightStatus struct {
	DefeatedTiles   []Coordinates `json:"defeatedTiles"`
	UndefeatedTiles []Coordinates `json:"undefeatedTiles"`
	IsDefeated      bool          `json:"isDefeated"`
}

// GetDragonFightStatus returns the fight status. A dragon tile is defeated once it is
// destroyed or has no empty neighbour left.
func GetDragonFightStatus(b *Board) DragonFightStatus {
	status := DragonFightStatus{}
	for x := 0; x < BOARD_SIZE; x++ {
		for y := 0; y < BOARD_SIZE; y++ {
			tile := b[x][y]
			if tile.Landscape != Monster || tile.MonsterType != Dragon {
				continue
			}
			if tile.Destroyed || !b.hasEmptyNeighbour(tile.Position) {
				status.DefeatedTiles = append(status.DefeatedTiles, tile.Position)
			} else {
				status.UndefeatedTiles = append(status.UndefeatedTiles, tile.Position)
			}
		}
	}
	status.IsDefeated = len(status.DefeatedTiles) > 0 && len(status.UndefeatedTiles) == 0
	return status
}

// UpdateDragonFight keeps the pending dragon coin on exactly one undefeated dragon tile
// and pays it out when the dragons of board become defeated after previous. A dragon drawn
// already enclosed pays out on the placement itself.
func UpdateDragonFight(previous, board Board) Board {
	before := GetDragonFightStatus(&previous)
	status := GetDragonFightStatus(&board)
	if len(status.DefeatedTiles)+len(status.UndefeatedTiles) == 0 {
		return board
	}

	var holder *BoardTile
	for _, c := range append(status.DefeatedTiles, status.UndefeatedTiles...) {
		if tile := board.Tile(c); tile.HasCoin {
			holder = tile
			break
		}
	}

	if status.IsDefeated {
		if !before.IsDefeated {
			if holder == nil {
				holder = board.Tile(newlyDefeated(before, status))
			}
			holder.WasScoreCoin = true
		}
		for _, c := range status.DefeatedTiles {
			board.Tile(c).HasCoin = false
		}
		return board
	}

	if holder != nil && board.hasEmptyNeighbour(holder.Position) && !holder.Destroyed {
		return board
	}
	for _, c := range status.DefeatedTiles {
		board.Tile(c).HasCoin = false
	}
	board.Tile(status.UndefeatedTiles[0]).HasCoin = true
	return board
}

// newlyDefeated returns the first defeated tile of after that was not yet defeated before.
func newlyDefeated(before, after DragonFightStatus) Coordinates {
	for _, c := range after.DefeatedTiles {
		if !slices.Contains(before.DefeatedTiles, c) {
			return c
		}
	}
	return after.DefeatedTiles[0]
}
