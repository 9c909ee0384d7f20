package experiments

import (
	"context"
	"fmt"
	"sync"

	"cartographers/engine"
	"cartographers/gamemaster"
	"cartographers/metrics"
	"cartographers/player"

	"github.com/rs/zerolog/log"
)

var botConfigs = []metrics.BotConfig{
	{ID: 1, Kind: "greedy"},
	{ID: 2, Kind: "random", Seed: 1},
	{ID: 3, Kind: "random", Seed: 2},
}

// RunBotMatchups pairs the greedy bot against each random bot for games games each
// and writes the records under dir. It returns the folder written to.
func RunBotMatchups(ctx context.Context, dir string, games, goroutines int, collector metrics.Collector) (string, error) {
	greedy := botConfigs[0]
	matchUps := [][]metrics.BotConfig{}
	for _, config := range botConfigs[1:] {
		matchUps = append(matchUps, []metrics.BotConfig{greedy, config})
	}
	return runExperiment(ctx, experiment{
		name:       "bot_matchups",
		dir:        dir,
		configs:    botConfigs,
		matchUps:   matchUps,
		games:      games,
		goroutines: goroutines,
		collector:  collector,
	})
}

type experiment struct {
	name       string
	dir        string
	configs    []metrics.BotConfig
	matchUps   [][]metrics.BotConfig
	games      int // Per match up
	goroutines int
	collector  metrics.Collector
}

type task struct {
	id      int
	seed    uint64
	matchUp []metrics.BotConfig
}

type result struct {
	game    metrics.GameRecord
	moves   []metrics.MoveRecord
	seasons []metrics.SeasonRecord
	err     error
}

func runExperiment(ctx context.Context, ex experiment) (string, error) {
	tasks := make(chan task, len(ex.matchUps)*ex.games)
	count := 0
	for _, matchUp := range ex.matchUps {
		for i := 0; i < ex.games; i++ {
			count++
			// Game i of every match up uses the same decks.
			tasks <- task{id: count, seed: uint64(i + 1), matchUp: matchUp}
		}
	}
	close(tasks)

	log.Info().Msgf("starting %s experiment with %d games on %d goroutines...", ex.name, count, ex.goroutines)

	results := make([]result, count)
	var wg sync.WaitGroup
	for i := 0; i < max(ex.goroutines, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tasks {
				results[t.id-1] = runGame(ctx, t, ex.collector)
				log.Info().Msgf("completed game %d of %d with winner: %s", t.id, count, results[t.id-1].game.Winner)
			}
		}()
	}
	wg.Wait()

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	seasonRecords := []metrics.SeasonRecord{}
	for _, r := range results {
		if r.err != nil {
			return "", fmt.Errorf("game %d failed: %w", r.game.ID, r.err)
		}
		gameRecords = append(gameRecords, r.game)
		moveRecords = append(moveRecords, r.moves...)
		seasonRecords = append(seasonRecords, r.seasons...)
	}
	log.Info().Msgf("completed %s experiment", ex.name)

	writer, err := metrics.NewWriter(ex.dir, ex.name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteBotConfigs(ex.configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	if err := writer.WriteSeasonRecords(seasonRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// runGame plays one game between the bots of a match up on a local engine.
func runGame(ctx context.Context, t task, collector metrics.Collector) result {
	r := result{game: metrics.GameRecord{ID: t.id, Bot1: t.matchUp[0].ID, Bot2: t.matchUp[1].ID}}

	seats := make([]engine.Seat, len(t.matchUp))
	for i, config := range t.matchUp {
		seats[i] = engine.Seat{
			Player: gamemaster.Player{ID: fmt.Sprintf("p%d-bot%d-%s", i+1, config.ID, config.Kind)},
			Bot:    player.New(config),
		}
	}

	e, err := engine.LocalEngine(ctx, t.seed, seats, collector)
	if err != nil {
		r.err = err
		return r
	}
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		r.err = err
		return r
	}
	r.game.GameMetric = gameMetric
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: t.id, MoveMetric: mm})
	}

	state, err := e.Table.GetGame(ctx, e.GameID)
	if err != nil {
		r.err = err
		return r
	}
	for _, seat := range seats {
		current, err := gamemaster.CurrentPlayerState(state, seat.Player.ID)
		if err != nil {
			r.err = err
			return r
		}
		for _, score := range current.SeasonScores {
			r.seasons = append(r.seasons, metrics.SeasonRecord{Game: t.id, Player: seat.Player.ID, SeasonScore: score})
		}
	}
	return r
}
