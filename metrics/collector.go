package metrics

import (
	"context"
	"time"

	"cartographers/game"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "cartographers"

type MoveMetric struct {
	Step       int
	Player     string
	Card       string
	Candidates int // Legal placements considered by the bot
	Discarded  bool
	Duration   time.Duration
}

type GameMetric struct {
	Seed       uint64
	Winner     string // Player ID
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// SeasonReporter receives every season snapshot taken by the game master.
type SeasonReporter interface {
	ReportSeasonScore(gameID, playerID string, score game.SeasonScore)
}

type Collector interface {
	AddMove(ctx context.Context, gameID string, special bool)
	AddRejectedMove(ctx context.Context, gameID string, reason string)
	AddReplay(ctx context.Context)
	AddSeasonScore(ctx context.Context, gameID, playerID string, score game.SeasonScore)
	AddRequest(ctx context.Context, route string, status int)
}

type collector struct {
	moves    metric.Int64Counter
	rejected metric.Int64Counter
	replays  metric.Int64Counter
	seasons  metric.Int64Histogram
	requests metric.Int64Counter
	reporter SeasonReporter
}

// NewCollector records through the global OpenTelemetry meter provider. reporter may be nil.
func NewCollector(reporter SeasonReporter) (Collector, error) {
	meter := otel.Meter(instrumentationName)
	c := &collector{reporter: reporter}

	var err error
	if c.moves, err = meter.Int64Counter("cartographers.moves",
		metric.WithDescription("Moves appended to player histories")); err != nil {
		return nil, err
	}
	if c.rejected, err = meter.Int64Counter("cartographers.moves.rejected",
		metric.WithDescription("Moves refused by the game master")); err != nil {
		return nil, err
	}
	if c.replays, err = meter.Int64Counter("cartographers.replays",
		metric.WithDescription("Move history replays")); err != nil {
		return nil, err
	}
	if c.seasons, err = meter.Int64Histogram("cartographers.season.score",
		metric.WithDescription("Total score of finished seasons")); err != nil {
		return nil, err
	}
	if c.requests, err = meter.Int64Counter("cartographers.http.requests",
		metric.WithDescription("API requests by route and status")); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *collector) AddMove(ctx context.Context, gameID string, special bool) {
	c.moves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("game", gameID),
		attribute.Bool("special", special),
	))
}

func (c *collector) AddRejectedMove(ctx context.Context, gameID string, reason string) {
	c.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("game", gameID),
		attribute.String("reason", reason),
	))
}

func (c *collector) AddReplay(ctx context.Context) {
	c.replays.Add(ctx, 1)
}

func (c *collector) AddSeasonScore(ctx context.Context, gameID, playerID string, score game.SeasonScore) {
	c.seasons.Record(ctx, int64(score.TotalScore), metric.WithAttributes(
		attribute.String("season", score.Season.Name),
	))
	if c.reporter != nil {
		c.reporter.ReportSeasonScore(gameID, playerID, score)
	}
	log.Debug().Str("game", gameID).Str("player", playerID).Str("season", score.Season.Name).
		Int("score", score.TotalScore).Msg("season scored")
}

func (c *collector) AddRequest(ctx context.Context, route string, status int) {
	c.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) AddMove(context.Context, string, bool)                            {}
func (dummyCollector) AddRejectedMove(context.Context, string, string)                  {}
func (dummyCollector) AddReplay(context.Context)                                        {}
func (dummyCollector) AddSeasonScore(context.Context, string, string, game.SeasonScore) {}
func (dummyCollector) AddRequest(context.Context, string, int)                          {}
