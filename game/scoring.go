package game

// Destroyed tiles never count towards a landscape in any goal.

func rowIndicator(y int) Coordinates    { return Coordinates{X: BOARD_SIZE, Y: y} }
func columnIndicator(x int) Coordinates { return Coordinates{X: x, Y: BOARD_SIZE} }

func newScoreInfo(category GoalCategory, scoreType ScoreType, perEntity int) ScoreInfo {
	return ScoreInfo{
		GoalCategory:            category,
		ScoreType:               scoreType,
		ScorePerEntity:          perEntity,
		ScoredTiles:             []Coordinates{},
		ScoreIndicatorPositions: []Coordinates{},
	}
}

// scoreLines scores every row (or column) of the board that satisfies qualifies.
// Tiles matching tileOf in a scored line are scored tiles, in other lines related tiles.
func scoreLines(b *Board, info ScoreInfo, rows bool, qualifies func(line []BoardTile) bool, tileOf func(BoardTile) bool) ScoreInfo {
	for i := 0; i < BOARD_SIZE; i++ {
		line := make([]BoardTile, BOARD_SIZE)
		for j := 0; j < BOARD_SIZE; j++ {
			if rows {
				line[j] = b[j][i]
			} else {
				line[j] = b[i][j]
			}
		}

		scored := qualifies(line)
		for _, t := range line {
			if !tileOf(t) {
				continue
			}
			if scored {
				info.ScoredTiles = append(info.ScoredTiles, t.Position)
			} else {
				info.RelatedTiles = append(info.RelatedTiles, t.Position)
			}
		}
		if !scored {
			continue
		}
		info.Score += info.ScorePerEntity
		if rows {
			info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, rowIndicator(i))
		} else {
			info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, columnIndicator(i))
		}
	}
	return info
}

func countLandscape(line []BoardTile, landscape LandscapeType) int {
	count := 0
	for _, t := range line {
		if t.Is(landscape) {
			count++
		}
	}
	return count
}

func isFullLine(line []BoardTile) bool {
	for _, t := range line {
		if t.IsEmpty() {
			return false
		}
	}
	return true
}

// scoreTiles gives perEntity points to every tile matching pred.
func scoreTiles(b *Board, info ScoreInfo, pred func(BoardTile) bool) ScoreInfo {
	for _, t := range b.Tiles() {
		if !pred(t) {
			continue
		}
		info.Score += info.ScorePerEntity
		info.ScoredTiles = append(info.ScoredTiles, t.Position)
		info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, t.Position)
	}
	return info
}

func (b *Board) hasNeighbour(c Coordinates, pred func(BoardTile) bool) bool {
	for _, n := range Neighbours(c) {
		if pred(*b.Tile(n)) {
			return true
		}
	}
	return false
}

func isLandscape(landscape LandscapeType) func(BoardTile) bool {
	return func(t BoardTile) bool { return t.Is(landscape) }
}

func isEdge(c Coordinates) bool {
	return c.X == 0 || c.Y == 0 || c.X == BOARD_SIZE-1 || c.Y == BOARD_SIZE-1
}

func scoreSleepyForest(b *Board) ScoreInfo {
	info := newScoreInfo(ForestCategory, RowScore, 4)
	return scoreLines(b, info, true, func(line []BoardTile) bool {
		return countLandscape(line, Forest) >= 3
	}, isLandscape(Forest))
}

func scoreForestEdge(b *Board) ScoreInfo {
	info := newScoreInfo(ForestCategory, TileScore, 1)
	return scoreTiles(b, info, func(t BoardTile) bool {
		return t.Is(Forest) && isEdge(t.Position)
	})
}

func scoreDeepWoods(b *Board) ScoreInfo {
	info := newScoreInfo(ForestCategory, TileScore, 1)
	return scoreTiles(b, info, func(t BoardTile) bool {
		return t.Is(Forest) && b.isSurrounded(t.Position)
	})
}

func areaScoreInfo(category GoalCategory, area Area, score int) ScoreInfo {
	info := newScoreInfo(category, AreaScore, 1)
	info.Score = score
	info.ScoredTiles = area.Positions()
	info.ScoreIndicatorPositions = []Coordinates{area.Tiles[0].Position}
	return info
}

func scoreCaravan(b *Board) ScoreInfo {
	var candidates []ScoreInfo
	for _, area := range GetIndividualAreas(b, Village) {
		lo, hi := area.BoundingBox()
		width, height := hi.X-lo.X+1, hi.Y-lo.Y+1
		candidates = append(candidates, areaScoreInfo(VillageCategory, area, width+height))
	}
	return GetMaxScoreInfo(candidates, newScoreInfo(VillageCategory, AreaScore, 1))
}

func scoreGreatCity(b *Board) ScoreInfo {
	var candidates []ScoreInfo
	for _, area := range GetIndividualAreas(b, Village) {
		touchesMountain := false
		for _, t := range area.Tiles {
			if b.hasNeighbour(t.Position, isLandscape(Mountain)) {
				touchesMountain = true
				break
			}
		}
		if touchesMountain {
			continue
		}
		candidates = append(candidates, areaScoreInfo(VillageCategory, area, len(area.Tiles)))
	}
	return GetMaxScoreInfo(candidates, newScoreInfo(VillageCategory, AreaScore, 1))
}

func scoreMarketTowns(b *Board) ScoreInfo {
	info := newScoreInfo(VillageCategory, AreaScore, 8)
	for _, area := range GetIndividualAreas(b, Village) {
		if len(area.Tiles) < 6 {
			info.RelatedTiles = append(info.RelatedTiles, area.Positions()...)
			continue
		}
		info.Score += info.ScorePerEntity
		info.ScoredTiles = append(info.ScoredTiles, area.Positions()...)
		info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, area.Tiles[0].Position)
	}
	return info
}

func scoreJorekCastle(b *Board) ScoreInfo {
	info := newScoreInfo(FieldWaterCategory, ColumnScore, 4)
	return scoreLines(b, info, false, func(line []BoardTile) bool {
		water := countLandscape(line, Water)
		return water > 0 && water == countLandscape(line, Field)
	}, func(t BoardTile) bool {
		return t.Is(Water) || t.Is(Field)
	})
}

func scoreIrrigation(b *Board) ScoreInfo {
	info := newScoreInfo(FieldWaterCategory, TileScore, 1)
	return scoreTiles(b, info, func(t BoardTile) bool {
		switch {
		case t.Is(Water):
			return b.hasNeighbour(t.Position, isLandscape(Field))
		case t.Is(Field):
			return b.hasNeighbour(t.Position, isLandscape(Water))
		}
		return false
	})
}

func scoreMountainLakes(b *Board) ScoreInfo {
	info := newScoreInfo(FieldWaterCategory, TileScore, 3)
	return scoreTiles(b, info, func(t BoardTile) bool {
		return t.Is(Mountain) && b.hasNeighbour(t.Position, isLandscape(Water))
	})
}

// scoreSilos counts odd columns in 1-based numbering, i.e. even indices.
func scoreSilos(b *Board) ScoreInfo {
	info := newScoreInfo(GlobalCategory, ColumnScore, 10)
	for x := 0; x < BOARD_SIZE; x += 2 {
		column := b[x][:]
		if !isFullLine(column) {
			continue
		}
		info.Score += info.ScorePerEntity
		for _, t := range column {
			info.ScoredTiles = append(info.ScoredTiles, t.Position)
		}
		info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, columnIndicator(x))
	}
	return info
}

func scoreHillsOfTolerance(b *Board) ScoreInfo {
	info := newScoreInfo(GlobalCategory, RowScore, 4)
	return scoreLines(b, info, true, func(line []BoardTile) bool {
		types := make(map[LandscapeType]struct{})
		for _, t := range line {
			if t.Landscape != NoLandscape && !t.Destroyed {
				types[t.Landscape] = struct{}{}
			}
		}
		return len(types) >= 5
	}, func(t BoardTile) bool {
		return t.Landscape != NoLandscape && !t.Destroyed
	})
}

func scoreBorderlands(b *Board) ScoreInfo {
	info := newScoreInfo(GlobalCategory, RowScore, 6)
	rows := scoreLines(b, info, true, isFullLine, BoardTile.IsFilled)
	columns := scoreLines(b, newScoreInfo(GlobalCategory, ColumnScore, 6), false, isFullLine, BoardTile.IsFilled)

	rows.Score += columns.Score
	rows.ScoredTiles = append(rows.ScoredTiles, columns.ScoredTiles...)
	rows.ScoreIndicatorPositions = append(rows.ScoreIndicatorPositions, columns.ScoreIndicatorPositions...)
	rows.RelatedTiles = nil
	return rows
}

// GetCoinScore counts scored coins; a defeated dragon pays three.
func GetCoinScore(b *Board) ScoreInfo {
	info := newScoreInfo(CoinCategory, CoinScore, 1)
	for _, t := range b.Tiles() {
		if !t.WasScoreCoin {
			continue
		}
		value := 1
		if t.MonsterType == Dragon {
			value = 3
		}
		info.Score += value
		info.ScoredTiles = append(info.ScoredTiles, t.Position)
		info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, t.Position)
	}
	return info
}

// GetMonsterScore is -1 for every empty tile next to a live monster tile.
func GetMonsterScore(b *Board) ScoreInfo {
	info := newScoreInfo(MonsterCategory, MonsterScore, -1)
	for _, t := range b.Tiles() {
		if t.IsLiveMonster() {
			info.RelatedTiles = append(info.RelatedTiles, t.Position)
			continue
		}
		if !t.IsEmpty() || !b.hasNeighbour(t.Position, BoardTile.IsLiveMonster) {
			continue
		}
		info.Score += info.ScorePerEntity
		info.ScoredTiles = append(info.ScoredTiles, t.Position)
		info.ScoreIndicatorPositions = append(info.ScoreIndicatorPositions, t.Position)
	}
	return info
}
