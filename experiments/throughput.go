package experiments

import (
	"context"
	"fmt"

	"cartographers/metrics"

	"github.com/rs/zerolog/log"
)

// RunThroughputExperiment plays the same greedy mirror games with a growing number of
// goroutines, one run folder per level, so game durations can be compared.
func RunThroughputExperiment(ctx context.Context, dir string, games int, levels []int) ([]string, error) {
	greedy := botConfigs[0]
	dirs := make([]string, 0, len(levels))
	for _, goroutines := range levels {
		log.Info().Msgf("starting throughput run with %d goroutines...", goroutines)
		out, err := runExperiment(ctx, experiment{
			name:       fmt.Sprintf("throughput_%d", goroutines),
			dir:        dir,
			configs:    []metrics.BotConfig{greedy},
			matchUps:   [][]metrics.BotConfig{{greedy, greedy}},
			games:      games,
			goroutines: goroutines,
			collector:  metrics.NewDummyCollector(),
		})
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, out)
	}
	return dirs, nil
}
