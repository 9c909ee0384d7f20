package player

import (
	"math"
	"time"

	"cartographers/game"
	"cartographers/gamemaster"
	"cartographers/metrics"

	"golang.org/x/exp/rand"
)

// Bot chooses where a player draws the card it has to place.
type Bot interface {
	FindMove(state gamemaster.GameState, current gamemaster.CurrentPlayerGameState) (game.Move, metrics.MoveMetric)
}

// DiscardMove lies off the board. The game master only accepts it when the card fits nowhere.
var DiscardMove = game.Move{Position: game.Coordinates{X: -game.BOARD_SIZE, Y: -game.BOARD_SIZE}}

// New returns the bot for a metrics.BotConfig kind.
func New(config metrics.BotConfig) Bot {
	if config.Kind == "random" {
		return NewRandomBot(config.Seed)
	}
	return NewGreedyBot()
}

type greedyBot struct{}

// NewGreedyBot returns a bot that maximizes the score of the running season after each
// placement, then the sum of all scores. The first move in LegalMoves order wins ties.
func NewGreedyBot() Bot {
	return greedyBot{}
}

func (greedyBot) FindMove(state gamemaster.GameState, current gamemaster.CurrentPlayerGameState) (game.Move, metrics.MoveMetric) {
	start := time.Now()
	card := *current.CardToPlace
	moves := game.LegalMoves(&current.BoardState, card)
	metric := metrics.MoveMetric{Player: current.Player.ID, Card: card.Name, Candidates: len(moves)}

	best, bestValue := DiscardMove, math.MinInt
	for _, move := range moves {
		shape, err := game.PlacedShapeFromMove(move, card)
		if err != nil {
			continue
		}
		value := evaluate(gamemaster.TempPlayerStateWithShape(state, current, shape))
		if value > bestValue {
			best, bestValue = move, value
		}
	}

	metric.Discarded = len(moves) == 0
	metric.Duration = time.Since(start)
	return best, metric
}

func evaluate(temp gamemaster.TempPlayerGameState) int {
	total := 0
	for _, score := range temp.Scores {
		total += score
	}
	if temp.Season == nil {
		return total
	}
	goals, coins, monsters := game.SplitScores(temp.Scores)
	seasonScore := game.GetSeasonScore(*temp.Season, goals, coins, monsters)
	return seasonScore*100 + total
}

// randomBot is not safe for concurrent use.
type randomBot struct {
	rand *rand.Rand
}

// NewRandomBot returns a bot drawing uniformly among the legal moves, reproducibly per seed.
func NewRandomBot(seed uint64) Bot {
	return &randomBot{rand: rand.New(rand.NewSource(seed))}
}

func (b *randomBot) FindMove(_ gamemaster.GameState, current gamemaster.CurrentPlayerGameState) (game.Move, metrics.MoveMetric) {
	start := time.Now()
	card := *current.CardToPlace
	moves := game.LegalMoves(&current.BoardState, card)
	metric := metrics.MoveMetric{Player: current.Player.ID, Card: card.Name, Candidates: len(moves)}

	move := DiscardMove
	if len(moves) > 0 {
		move = moves[b.rand.Intn(len(moves))]
	} else {
		metric.Discarded = true
	}
	metric.Duration = time.Since(start)
	return move, metric
}
