package game

// MonsterTiming describes when a monster type acts.
type MonsterTiming struct {
	IsEndOfSeasonEffect bool
	IsPlacingEffect     bool
}

// MonsterEffects lists the discrete effects. Dragons act only through the fight status.
var MonsterEffects = map[MonsterType]MonsterTiming{
	Dragon: {},
	Troll:  {IsEndOfSeasonEffect: true},
	Zombie: {IsEndOfSeasonEffect: true},
	Gorgon: {IsPlacingEffect: true},
}

// GetMonsterMove decides what a monster type does to board. It returns nil when the
// effect has nothing to act on.
func GetMonsterMove(b *Board, monsterType MonsterType) *SpecialMove {
	var affected []Coordinates
	switch monsterType {
	case Troll:
		affected = trollTargets(b)
	case Zombie:
		affected = zombieTargets(b)
	case Gorgon:
		affected = gorgonTargets(b)
	}
	if len(affected) == 0 {
		return nil
	}
	return &SpecialMove{Action: MonsterEffect, MonsterType: monsterType, AffectedTiles: affected}
}

// GetSeasonEndMonsterMove decides the effect of monsterType if it acts at the end of a season.
func GetSeasonEndMonsterMove(b *Board, monsterType MonsterType) *SpecialMove {
	if !MonsterEffects[monsterType].IsEndOfSeasonEffect {
		return nil
	}
	return GetMonsterMove(b, monsterType)
}

// GetPlacingMonsterMove decides the effect of monsterType if it acts after a placement.
func GetPlacingMonsterMove(b *Board, monsterType MonsterType) *SpecialMove {
	if !MonsterEffects[monsterType].IsPlacingEffect {
		return nil
	}
	return GetMonsterMove(b, monsterType)
}

// ApplySpecialEffect applies a monster effect to a copy of board. Moves recorded without
// affected tiles are decided against the board first. Season changes leave the board as is.
func ApplySpecialEffect(board Board, move SpecialMove) Board {
	if move.Action != MonsterEffect {
		return board
	}

	previous := board
	affected := move.AffectedTiles
	if len(affected) == 0 {
		decided := GetMonsterMove(&board, move.MonsterType)
		if decided == nil {
			return board
		}
		affected = decided.AffectedTiles
	}

	for _, c := range affected {
		tile := board.Tile(c)
		if tile == nil {
			continue
		}
		switch move.MonsterType {
		case Troll, Gorgon:
			tile.Destroyed = true
		case Zombie:
			if !tile.IsEmpty() {
				continue
			}
			tile.Landscape = Monster
			tile.MonsterType = Zombie
			if tile.HeroStar {
				tile.Destroyed = true
			}
		}
	}

	return UpdateDragonFight(previous, board)
}

func monsterTiles(b *Board, monsterType MonsterType) []BoardTile {
	var tiles []BoardTile
	for _, t := range b.Tiles() {
		if t.IsLiveMonster() && t.MonsterType == monsterType {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// trollTargets picks the first empty neighbour of the first troll tile that has one.
func trollTargets(b *Board) []Coordinates {
	for _, troll := range monsterTiles(b, Troll) {
		for _, n := range Neighbours(troll.Position) {
			if b.Tile(n).IsEmpty() {
				return []Coordinates{n}
			}
		}
	}
	return nil
}

// zombieTargets collects every empty tile next to a zombie tile, each once.
func zombieTargets(b *Board) []Coordinates {
	var targets []Coordinates
	seen := make(map[Coordinates]struct{})
	for _, zombie := range monsterTiles(b, Zombie) {
		for _, n := range Neighbours(zombie.Position) {
			if _, ok := seen[n]; ok || !b.Tile(n).IsEmpty() {
				continue
			}
			seen[n] = struct{}{}
			targets = append(targets, n)
		}
	}
	return targets
}

// gorgonTargets petrifies one neighbour of a gorgon tile: a drawn landscape if the
// gorgon tile has one next to it, else an empty tile. Mountains and monsters are immune.
func gorgonTargets(b *Board) []Coordinates {
	for _, gorgon := range monsterTiles(b, Gorgon) {
		neighbours := Neighbours(gorgon.Position)
		for _, n := range neighbours {
			t := b.Tile(n)
			if t.Landscape != NoLandscape && t.Landscape != Mountain && !t.Destroyed {
				return []Coordinates{n}
			}
		}
		for _, n := range neighbours {
			if b.Tile(n).IsEmpty() {
				return []Coordinates{n}
			}
		}
	}
	return nil
}
