package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartographers/game"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog/log"
)

const seasonScoreMeasurement = "season_score"

type InfluxConfig struct {
	Protocol string
	Host     string
	Port     string
	Token    string
	Org      string
	Bucket   string
}

// InfluxReporter writes season snapshots as points. Writes are batched by the client.
type InfluxReporter struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
}

func NewInfluxReporter(ctx context.Context, cfg InfluxConfig) (*InfluxReporter, error) {
	client := influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", cfg.Protocol, cfg.Host, cfg.Port),
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000),
	)

	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		return nil, errors.Join(errors.New("influxdb is not reachable"), err)
	}

	writer := client.WriteAPI(cfg.Org, cfg.Bucket)
	go func() {
		for err := range writer.Errors() {
			log.Error().Err(err).Str("bucket", cfg.Bucket).Msg("Failed to write to InfluxDB")
		}
	}()

	return &InfluxReporter{client: client, writer: writer}, nil
}

func (r *InfluxReporter) ReportSeasonScore(gameID, playerID string, score game.SeasonScore) {
	r.writer.WritePoint(SeasonScorePoint(gameID, playerID, score, time.Now()))
}

// SeasonScorePoint builds the point written for one season snapshot.
func SeasonScorePoint(gameID, playerID string, score game.SeasonScore, at time.Time) *influxdb2_write.Point {
	point := influxdb2_write.NewPointWithMeasurement(seasonScoreMeasurement).
		AddTag("game", gameID).
		AddTag("player", playerID).
		AddTag("season", score.Season.Name).
		AddField("coins", score.Coins).
		AddField("monster_score", score.MonsterScore).
		AddField("total_score", score.TotalScore).
		SetTime(at)
	for i, goal := range score.GoalScores {
		point.AddField(fmt.Sprintf("goal_%d", i), goal)
	}
	return point
}

// Close flushes pending points.
func (r *InfluxReporter) Close() {
	r.writer.Flush()
	r.client.Close()
}
