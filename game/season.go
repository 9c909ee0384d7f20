package game

// Season is one scoring epoch. GoalIndices select which of the four category goals score in it.
type Season struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Duration    int    `json:"duration"`
	GoalIndices []int  `json:"goalIndices"`
}

var Seasons = []Season{
	{Name: "Spring", Emoji: "🌸", Duration: 8, GoalIndices: []int{0, 1}},
	{Name: "Summer", Emoji: "☀️", Duration: 7, GoalIndices: []int{1, 2}},
	{Name: "Autumn", Emoji: "🍂", Duration: 7, GoalIndices: []int{2, 3}},
	{Name: "Winter", Emoji: "❄️", Duration: 6, GoalIndices: []int{3, 0}},
}

// SeasonScore is the snapshot taken when a season ends.
type SeasonScore struct {
	Season       Season `json:"season"`
	GoalScores   []int  `json:"goalScores"`
	Coins        int    `json:"coins"`
	MonsterScore int    `json:"monsterScore"`
	TotalScore   int    `json:"totalScore"`
}

// GetSeasonScore adds the season's goal scores to the always-active coin and monster scores.
func GetSeasonScore(season Season, scores []int, coins, monsterScore int) int {
	total := coins + monsterScore
	for _, i := range season.GoalIndices {
		if i < len(scores) {
			total += scores[i]
		}
	}
	return total
}

// NewSeasonScore snapshots the scores of a board evaluated against goals in ScoreInfos order.
func NewSeasonScore(season Season, scores []int) SeasonScore {
	goals, coins, monsters := SplitScores(scores)
	goalScores := append(make([]int, 0, len(goals)), goals...)
	return SeasonScore{
		Season:       season,
		GoalScores:   goalScores,
		Coins:        coins,
		MonsterScore: monsters,
		TotalScore:   GetSeasonScore(season, goalScores, coins, monsters),
	}
}

// TimeProgress sums the time values of cards.
func TimeProgress(cards []LandscapeCard) int {
	total := 0
	for _, c := range cards {
		total += c.TimeValue
	}
	return total
}
