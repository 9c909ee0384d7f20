package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LandscapeCard is static catalog data. Cards are copied into persisted decks as-is.
type LandscapeCard struct {
	Name           string          `json:"name"`
	TimeValue      int             `json:"timeValue"`
	LandscapeTypes []LandscapeType `json:"landscapeTypes"`
	BaseShapes     []BaseShape     `json:"baseShapes"`
	Monster        MonsterType     `json:"monster,omitempty"`
	HeroPosition   *Coordinates    `json:"heroPosition,omitempty"`
}

func (c LandscapeCard) IsMonster() bool {
	return len(c.LandscapeTypes) > 0 && c.LandscapeTypes[0] == Monster
}

func (c LandscapeCard) IsHero() bool {
	return len(c.LandscapeTypes) > 0 && c.LandscapeTypes[0] == Hero
}

// IsSpecial reports whether the card is a monster or hero card.
func (c LandscapeCard) IsSpecial() bool {
	return c.IsMonster() || c.IsHero()
}

type MonsterInfo struct {
	Type        MonsterType `yaml:"type" json:"type"`
	Name        string      `yaml:"name" json:"name"`
	Emoji       string      `yaml:"emoji" json:"emoji"`
	Description string      `yaml:"description" json:"description"`
}

var (
	Shapes         map[string]BaseShape
	MonsterInfos   map[MonsterType]MonsterInfo
	LandscapeCards []LandscapeCard
	MonsterCards   []LandscapeCard
	HeroCards      []LandscapeCard
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogShape struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Cells  [][2]int `yaml:"cells"`
	Coin   bool     `yaml:"coin"`
}

type catalogCard struct {
	Name           string          `yaml:"name"`
	TimeValue      int             `yaml:"timeValue"`
	LandscapeTypes []LandscapeType `yaml:"landscapeTypes"`
	Shapes         []string        `yaml:"shapes"`
	Monster        MonsterType     `yaml:"monster"`
	HeroPosition   []int           `yaml:"heroPosition"`
}

type catalog struct {
	Shapes         map[string]catalogShape `yaml:"shapes"`
	Monsters       []MonsterInfo           `yaml:"monsters"`
	LandscapeCards []catalogCard           `yaml:"landscapeCards"`
	MonsterCards   []catalogCard           `yaml:"monsterCards"`
	HeroCards      []catalogCard           `yaml:"heroCards"`
}

func init() {
	if err := loadCatalog(catalogYAML); err != nil {
		panic(err)
	}
}

func loadCatalog(data []byte) error {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse card catalog: %w", err)
	}

	Shapes = make(map[string]BaseShape, len(c.Shapes))
	for name, s := range c.Shapes {
		shape := BaseShape{Width: s.Width, Height: s.Height, HasCoin: s.Coin}
		for _, cell := range s.Cells {
			shape.FilledCells = append(shape.FilledCells, Coordinates{X: cell[0], Y: cell[1]})
		}
		Shapes[name] = shape
	}

	MonsterInfos = make(map[MonsterType]MonsterInfo, len(c.Monsters))
	for _, m := range c.Monsters {
		MonsterInfos[m.Type] = m
	}

	var err error
	if LandscapeCards, err = buildCards(c.LandscapeCards); err != nil {
		return err
	}
	if MonsterCards, err = buildCards(c.MonsterCards); err != nil {
		return err
	}
	HeroCards, err = buildCards(c.HeroCards)
	return err
}

func buildCards(entries []catalogCard) ([]LandscapeCard, error) {
	cards := make([]LandscapeCard, 0, len(entries))
	for _, e := range entries {
		card := LandscapeCard{
			Name:           e.Name,
			TimeValue:      e.TimeValue,
			LandscapeTypes: e.LandscapeTypes,
			Monster:        e.Monster,
		}
		for _, name := range e.Shapes {
			shape, ok := Shapes[name]
			if !ok {
				return nil, fmt.Errorf("card %q references unknown shape %q", e.Name, name)
			}
			card.BaseShapes = append(card.BaseShapes, shape.Copy())
		}
		if len(e.HeroPosition) == 2 {
			card.HeroPosition = &Coordinates{X: e.HeroPosition[0], Y: e.HeroPosition[1]}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// PortalCard returns the joker card offered next to a card whose first landscape is primary.
// Monster cards get a single monster cell; every other card gets the four basic landscapes.
func PortalCard(primary LandscapeType) LandscapeCard {
	portal := LandscapeCard{
		Name:       "Portal",
		BaseShapes: []BaseShape{Shapes["DOT"].Copy()},
	}
	if primary == Monster {
		portal.LandscapeTypes = []LandscapeType{Monster}
	} else {
		portal.LandscapeTypes = append([]LandscapeType(nil), BasicLandscapes...)
	}
	return portal
}

// ShapeOptions counts the shape choices for card: its own shapes followed by the portal shapes.
func ShapeOptions(card LandscapeCard) int {
	return len(card.BaseShapes) + len(PortalCard(primaryLandscape(card)).BaseShapes)
}

func primaryLandscape(card LandscapeCard) LandscapeType {
	if len(card.LandscapeTypes) == 0 {
		return NoLandscape
	}
	return card.LandscapeTypes[0]
}
