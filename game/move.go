package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Move places the current card. Rotations are applied clockwise first, then
// counter-clockwise, then the flip.
type Move struct {
	SelectedShapeIndex                int         `json:"selectedShapeIndex"`
	SelectedLandscapeIndex            int         `json:"selectedLandscapeIndex"`
	Position                          Coordinates `json:"position"`
	NumberOfClockwiseRotations        int         `json:"numberOfClockwiseRotations"`
	NumberOfCounterClockwiseRotations int         `json:"numberOfCounterClockwiseRotations"`
	IsFlipped                         bool        `json:"isFlipped"`
}

type SpecialAction string

const (
	ChangeOfSeason SpecialAction = "change_of_season"
	MonsterEffect  SpecialAction = "monster_effect"
)

type SpecialMove struct {
	Action        SpecialAction `json:"action"`
	MonsterType   MonsterType   `json:"monsterType,omitempty"`
	AffectedTiles []Coordinates `json:"affectedTiles,omitempty"`
}

// AnyMove is one entry of a move history: exactly one of Regular and Special is set.
// It encodes as the flat JSON object of whichever move it holds.
type AnyMove struct {
	Regular *Move
	Special *SpecialMove
}

func RegularMove(m Move) AnyMove {
	return AnyMove{Regular: &m}
}

func SpecialMoveOf(m SpecialMove) AnyMove {
	return AnyMove{Special: &m}
}

func SeasonChange() AnyMove {
	return SpecialMoveOf(SpecialMove{Action: ChangeOfSeason})
}

func (m AnyMove) IsRegular() bool {
	return m.Regular != nil
}

func (m AnyMove) IsSeasonChange() bool {
	return m.Special != nil && m.Special.Action == ChangeOfSeason
}

func (m AnyMove) IsMonsterEffect() bool {
	return m.Special != nil && m.Special.Action == MonsterEffect
}

func (m AnyMove) MarshalJSON() ([]byte, error) {
	switch {
	case m.Regular != nil:
		return json.Marshal(m.Regular)
	case m.Special != nil:
		return json.Marshal(m.Special)
	default:
		return nil, fmt.Errorf("empty move")
	}
}

func (m *AnyMove) UnmarshalJSON(data []byte) error {
	var probe struct {
		Action *SpecialAction `json:"action"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to decode move: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if probe.Action != nil {
		var special SpecialMove
		if err := decoder.Decode(&special); err != nil {
			return fmt.Errorf("failed to decode special move: %w", err)
		}
		*m = AnyMove{Special: &special}
		return nil
	}

	var regular Move
	if err := decoder.Decode(&regular); err != nil {
		return fmt.Errorf("failed to decode regular move: %w", err)
	}
	*m = AnyMove{Regular: &regular}
	return nil
}

// NormalizeRotations folds both rotation counts into an equivalent clockwise count in [0, 4).
func NormalizeRotations(m Move) Move {
	clockwise := m.NumberOfClockwiseRotations % 4
	counterClockwise := m.NumberOfCounterClockwiseRotations % 4
	m.NumberOfClockwiseRotations = ((clockwise-counterClockwise)%4 + 4) % 4
	m.NumberOfCounterClockwiseRotations = 0
	return m
}

// LandscapeFromMove resolves the shape a move draws from card. A shape index past the
// card's own shapes selects from the portal card.
func LandscapeFromMove(m Move, card LandscapeCard) (LandscapeShape, error) {
	var shape LandscapeShape

	if m.SelectedShapeIndex >= len(card.BaseShapes) {
		portal := PortalCard(primaryLandscape(card))
		index := m.SelectedShapeIndex - len(card.BaseShapes)
		if index >= len(portal.BaseShapes) || m.SelectedLandscapeIndex < 0 || m.SelectedLandscapeIndex >= len(portal.LandscapeTypes) {
			return shape, fmt.Errorf("move selects shape %d landscape %d outside portal of %q", m.SelectedShapeIndex, m.SelectedLandscapeIndex, card.Name)
		}
		shape = LandscapeShape{
			BaseShape:   portal.BaseShapes[index],
			Type:        portal.LandscapeTypes[m.SelectedLandscapeIndex],
			MonsterType: card.Monster,
		}
	} else {
		if m.SelectedShapeIndex < 0 || m.SelectedLandscapeIndex < 0 || m.SelectedLandscapeIndex >= len(card.LandscapeTypes) {
			return shape, fmt.Errorf("move selects shape %d landscape %d outside card %q", m.SelectedShapeIndex, m.SelectedLandscapeIndex, card.Name)
		}
		shape = LandscapeShape{
			BaseShape:    card.BaseShapes[m.SelectedShapeIndex],
			Type:         card.LandscapeTypes[m.SelectedLandscapeIndex],
			HeroPosition: card.HeroPosition,
			MonsterType:  card.Monster,
		}
	}

	return ApplyMoveTransformations(shape, m), nil
}

// ApplyMoveTransformations rotates and flips shape as the move describes.
func ApplyMoveTransformations(shape LandscapeShape, m Move) LandscapeShape {
	for i := 0; i < m.NumberOfClockwiseRotations; i++ {
		shape = shape.RotateClockwise()
	}
	for i := 0; i < m.NumberOfCounterClockwiseRotations; i++ {
		shape = shape.RotateCounterClockwise()
	}
	if m.IsFlipped {
		shape = shape.Mirror()
	}
	return shape
}

// PlacedShapeFromMove resolves the shape and anchors it at the move's position.
func PlacedShapeFromMove(m Move, card LandscapeCard) (PlacedLandscapeShape, error) {
	shape, err := LandscapeFromMove(m, card)
	if err != nil {
		return PlacedLandscapeShape{}, err
	}
	return shape.At(m.Position), nil
}
