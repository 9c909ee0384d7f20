package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"cartographers/communication"
	"cartographers/gamemaster"
	"cartographers/meta"
	"cartographers/metrics"
	"cartographers/player"
	"cartographers/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Seat is a player driven by a bot.
type Seat struct {
	Player gamemaster.Player
	Bot    player.Bot
}

type Engine struct {
	Table  Table
	GameID string
	Seed   uint64
	Seats  []Seat
}

// NewEngine plays the game gameID, which must already have every seat joined, at table.
func NewEngine(table Table, gameID string, seed uint64, seats []Seat) *Engine {
	return &Engine{Table: table, GameID: gameID, Seed: seed, Seats: seats}
}

// LocalEngine deals a game from seed into an in-memory store behind a game master and
// joins every seat to it.
func LocalEngine(ctx context.Context, seed uint64, seats []Seat, collector metrics.Collector) (*Engine, error) {
	if len(seats) == 0 {
		return nil, errors.New("need at least one seat")
	}

	comm := communication.NewStoreCommunicator(storage.NewMemoryStore())
	gameID := uuid.New().String()
	if err := comm.CreateGame(ctx, gameID, gamemaster.NewGame(seed, seats[0].Player)); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	master := gamemaster.NewGameMaster(comm, collector)
	for _, seat := range seats[1:] {
		if err := master.Join(ctx, gameID, seat.Player); err != nil {
			return nil, fmt.Errorf("failed to seat %s: %w", seat.Player.ID, err)
		}
	}
	return NewEngine(master, gameID, seed, seats), nil
}

// Run plays every seat until all of them finished the game or meta.MAX_TURNS is reached.
// The winner is the seat with the highest total score, the earlier seat on ties, and is
// empty when the game did not finish.
func (e *Engine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Seed: e.Seed, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric
	finished := make([]bool, len(e.Seats))

	log.Info().Str("game", e.GameID).Msgf("game with %d seats is starting", len(e.Seats))

	turn := 1
	for ; turn <= meta.MAX_TURNS && slices.Contains(finished, false); turn++ {
		for i, seat := range e.Seats {
			if finished[i] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return "", gameMetric, moveMetrics, err
			}

			state, err := e.Table.GetGame(ctx, e.GameID)
			if err != nil {
				return "", gameMetric, moveMetrics, err
			}
			current, err := gamemaster.CurrentPlayerState(state, seat.Player.ID)
			if err != nil {
				return "", gameMetric, moveMetrics, err
			}

			switch {
			case current.IsEndOfGame:
				finished[i] = true
				log.Info().Str("game", e.GameID).Msgf("%s finished with %d points", seat.Player.ID, current.TotalScore())
			case current.IsEndOfSeason:
				log.Debug().Str("game", e.GameID).Str("player", seat.Player.ID).Msgf("%s is over", current.Season.Name)
				if err := e.Table.EndSeason(ctx, e.GameID, seat.Player.ID); err != nil {
					return "", gameMetric, moveMetrics, fmt.Errorf("failed to end season for %s: %w", seat.Player.ID, err)
				}
			default:
				move, metric := seat.Bot.FindMove(state, current)
				metric.Step = turn
				moveMetrics = append(moveMetrics, metric)
				if err := e.Table.SubmitMove(ctx, e.GameID, seat.Player.ID, move); err != nil {
					return "", gameMetric, moveMetrics, fmt.Errorf("bot of %s played %+v: %w", seat.Player.ID, move, err)
				}
			}
		}
	}

	state, err := e.Table.GetGame(ctx, e.GameID)
	if err != nil {
		return "", gameMetric, moveMetrics, err
	}
	winner, totalMoves := e.result(state)
	if slices.Contains(finished, false) {
		log.Info().Str("game", e.GameID).Msgf("stopped after %d turns (game not over)", meta.MAX_TURNS)
		winner = ""
	} else {
		log.Info().Str("game", e.GameID).Msgf("game over after %d turns, winner: %s", turn-1, winner)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = totalMoves
	return winner, gameMetric, moveMetrics, nil
}

func (e *Engine) result(state gamemaster.GameState) (string, int) {
	winner, best, totalMoves := "", math.MinInt, 0
	for _, seat := range e.Seats {
		current, err := gamemaster.CurrentPlayerState(state, seat.Player.ID)
		if err != nil {
			continue
		}
		totalMoves += len(current.MoveHistory)
		if score := current.TotalScore(); score > best {
			winner, best = seat.Player.ID, score
		}
	}
	return winner, totalMoves
}
