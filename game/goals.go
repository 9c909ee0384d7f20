package game

import "fmt"

type GoalCategory string

const (
	ForestCategory     GoalCategory = "forest"
	VillageCategory    GoalCategory = "village"
	FieldWaterCategory GoalCategory = "field-water"
	GlobalCategory     GoalCategory = "global"
	CoinCategory       GoalCategory = "coin"
	MonsterCategory    GoalCategory = "monster"
)

// GoalCategories are the rotating categories, one goal each per game.
var GoalCategories = []GoalCategory{ForestCategory, VillageCategory, FieldWaterCategory, GlobalCategory}

// CATEGORY_GOALS is the number of rotating goals in a game.
const CATEGORY_GOALS = 4

// ScoreType tells a client how the score indicators of a goal should be read.
type ScoreType string

const (
	RowScore     ScoreType = "row"
	ColumnScore  ScoreType = "column"
	AreaScore    ScoreType = "area"
	TileScore    ScoreType = "tile"
	CoinScore    ScoreType = "coin"
	MonsterScore ScoreType = "monster"
)

// ScoreInfo is the structured result of evaluating one goal on a board.
type ScoreInfo struct {
	GoalCategory            GoalCategory  `json:"goalCategory"`
	ScoreType               ScoreType     `json:"scoreType"`
	ScorePerEntity          int           `json:"scorePerEntity"`
	Score                   int           `json:"score"`
	ScoredTiles             []Coordinates `json:"scoredTiles"`
	RelatedTiles            []Coordinates `json:"relatedTiles,omitempty"`
	ScoreIndicatorPositions []Coordinates `json:"scoreIndicatorPositions"`
}

// GoalKind identifies a scoring algorithm. Goals are plain data; Score dispatches on the kind.
type GoalKind string

const (
	SleepyForest     GoalKind = "sleepy_forest"
	ForestEdge       GoalKind = "forest_edge"
	DeepWoods        GoalKind = "deep_woods"
	Caravan          GoalKind = "caravan"
	GreatCity        GoalKind = "great_city"
	MarketTowns      GoalKind = "market_towns"
	JorekCastle      GoalKind = "jorek_castle"
	Irrigation       GoalKind = "irrigation"
	MountainLakes    GoalKind = "mountain_lakes"
	Silos            GoalKind = "silos"
	HillsOfTolerance GoalKind = "hills_of_tolerance"
	Borderlands      GoalKind = "borderlands"
	Coins            GoalKind = "coins"
	Monsters         GoalKind = "monsters"
)

type Goal struct {
	Kind        GoalKind     `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    GoalCategory `json:"category"`
}

var (
	CoinGoal = Goal{
		Kind: Coins, Name: "Coins", Category: CoinCategory,
		Description: "1 point per coin, 3 points for a defeated dragon",
	}
	MonsterGoal = Goal{
		Kind: Monsters, Name: "Monsters", Category: MonsterCategory,
		Description: "-1 point for each empty tile next to a monster",
	}
)

// Goals is the library of rotating goals, grouped by category.
var Goals = []Goal{
	{Kind: SleepyForest, Name: "Sleepy Forest", Category: ForestCategory,
		Description: "4 points for each row with at least 3 forest tiles"},
	{Kind: ForestEdge, Name: "Edge of the Woods", Category: ForestCategory,
		Description: "1 point for each forest tile on the edge of the map"},
	{Kind: DeepWoods, Name: "Deep Woods", Category: ForestCategory,
		Description: "1 point for each forest tile surrounded on all sides by filled tiles or the map edge"},
	{Kind: Caravan, Name: "Caravan", Category: VillageCategory,
		Description: "1 point for each column and row of your widest village area"},
	{Kind: GreatCity, Name: "Great City", Category: VillageCategory,
		Description: "1 point for each tile of the largest village area not next to a mountain"},
	{Kind: MarketTowns, Name: "Market Towns", Category: VillageCategory,
		Description: "8 points for each village area of at least 6 tiles"},
	{Kind: JorekCastle, Name: "Jorek Castle", Category: FieldWaterCategory,
		Description: "4 points for each column with the same number of water and field tiles"},
	{Kind: Irrigation, Name: "Irrigation", Category: FieldWaterCategory,
		Description: "1 point for each water tile next to a field and each field tile next to water"},
	{Kind: MountainLakes, Name: "Mountain Lakes", Category: FieldWaterCategory,
		Description: "3 points for each mountain next to at least one water tile"},
	{Kind: Silos, Name: "Silos", Category: GlobalCategory,
		Description: "10 points for each fully filled odd column"},
	{Kind: HillsOfTolerance, Name: "Hills of Tolerance", Category: GlobalCategory,
		Description: "4 points for each row with at least 5 different landscape types"},
	{Kind: Borderlands, Name: "Borderlands", Category: GlobalCategory,
		Description: "6 points for each fully filled row or column"},
}

// GoalsByCategory returns the library goals of one category in library order.
func GoalsByCategory(category GoalCategory) []Goal {
	var goals []Goal
	for _, g := range Goals {
		if g.Category == category {
			goals = append(goals, g)
		}
	}
	return goals
}

// FindGoal looks a goal up by kind, including the coin and monster goals.
func FindGoal(kind GoalKind) (Goal, bool) {
	for _, g := range Goals {
		if g.Kind == kind {
			return g, true
		}
	}
	switch kind {
	case Coins:
		return CoinGoal, true
	case Monsters:
		return MonsterGoal, true
	}
	return Goal{}, false
}

// Score evaluates the goal on b.
func (g Goal) Score(b *Board) ScoreInfo {
	switch g.Kind {
	case SleepyForest:
		return scoreSleepyForest(b)
	case ForestEdge:
		return scoreForestEdge(b)
	case DeepWoods:
		return scoreDeepWoods(b)
	case Caravan:
		return scoreCaravan(b)
	case GreatCity:
		return scoreGreatCity(b)
	case MarketTowns:
		return scoreMarketTowns(b)
	case JorekCastle:
		return scoreJorekCastle(b)
	case Irrigation:
		return scoreIrrigation(b)
	case MountainLakes:
		return scoreMountainLakes(b)
	case Silos:
		return scoreSilos(b)
	case HillsOfTolerance:
		return scoreHillsOfTolerance(b)
	case Borderlands:
		return scoreBorderlands(b)
	case Coins:
		return GetCoinScore(b)
	case Monsters:
		return GetMonsterScore(b)
	default:
		return FallbackScoreInfo(g.Category)
	}
}

func (g Goal) String() string {
	return fmt.Sprintf("%s (%s)", g.Name, g.Category)
}

// FallbackScoreInfo is the zero result used for unknown goals.
func FallbackScoreInfo(category GoalCategory) ScoreInfo {
	return ScoreInfo{
		GoalCategory:            category,
		ScoreType:               TileScore,
		ScoredTiles:             []Coordinates{},
		ScoreIndicatorPositions: []Coordinates{},
	}
}

// GetMaxScoreInfo returns the candidate with the highest score; the first one wins ties.
func GetMaxScoreInfo(candidates []ScoreInfo, fallback ScoreInfo) ScoreInfo {
	if len(candidates) == 0 {
		return fallback
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// GetScoresFromBoard evaluates the category goals followed by the coin and monster goals.
// Coin and monster goals stored among goals are skipped so they are only counted once, last.
func GetScoresFromBoard(goals []Goal, b *Board) []ScoreInfo {
	infos := make([]ScoreInfo, 0, len(goals)+2)
	for _, g := range goals {
		if g.Category == CoinCategory || g.Category == MonsterCategory {
			continue
		}
		infos = append(infos, g.Score(b))
	}
	return append(infos, GetCoinScore(b), GetMonsterScore(b))
}

// SplitScores separates scores in GetScoresFromBoard order into the category goal scores and
// the trailing coin and monster scores.
func SplitScores(scores []int) (goalScores []int, coins, monsters int) {
	n := len(scores)
	if n < 2 {
		return scores, 0, 0
	}
	return scores[:n-2], scores[n-2], scores[n-1]
}

// Scores extracts the numeric scores.
func Scores(infos []ScoreInfo) []int {
	scores := make([]int, len(infos))
	for i, info := range infos {
		scores[i] = info.Score
	}
	return scores
}
