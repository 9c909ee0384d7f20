package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"cartographers/communication"
	"cartographers/communication/client"
	"cartographers/communication/server"
	"cartographers/config"
	"cartographers/engine"
	"cartographers/experiments"
	"cartographers/gamemaster"
	"cartographers/logging"
	"cartographers/meta"
	"cartographers/metrics"
	"cartographers/player"
	"cartographers/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = `usage: cartographers <command> [flags]

commands:
  serve       run the game server
  new         deal a game into the configured storage
  simulate    let bots play a game, locally or against a server
  experiment  run bot match ups and write CSV records`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	configDir := os.Getenv("CARTOGRAPHERS_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	logging.SetupDefault()
	if err := config.Load(configDir); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	graylog := ""
	if config.GetBool("graylog.enabled") {
		graylog = config.GetString("graylog.address")
	}
	if err := logging.Setup(os.Stdout, config.GetString("logLevel"), graylog); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collector, closeCollector := newCollector(ctx)
	defer closeCollector()

	var err error
	switch os.Args[1] {
	case "serve":
		err = serve(os.Args[2:], collector)
	case "new":
		err = newGame(ctx, os.Args[2:])
	case "simulate":
		err = simulate(ctx, os.Args[2:], collector)
	case "experiment":
		err = experiment(ctx, os.Args[2:], collector)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", os.Args[1])
		os.Exit(1)
	}
}

// newCollector reports to OpenTelemetry and, if enabled, season scores to InfluxDB.
func newCollector(ctx context.Context) (metrics.Collector, func()) {
	var reporter metrics.SeasonReporter
	closer := func() {}
	if config.GetBool("influx.enabled") {
		influx, err := metrics.NewInfluxReporter(ctx, metrics.InfluxConfig{
			Protocol: config.GetString("influx.protocol"),
			Host:     config.GetString("influx.host"),
			Port:     config.GetString("influx.port"),
			Token:    config.GetString("influx.token"),
			Org:      config.GetString("influx.org"),
			Bucket:   config.GetString("influx.bucket"),
		})
		if err != nil {
			log.Warn().Err(err).Msg("season scores will not be sent to InfluxDB")
		} else {
			reporter = influx
			closer = influx.Close
		}
	}

	collector, err := metrics.NewCollector(reporter)
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled")
		return metrics.NewDummyCollector(), closer
	}
	return collector, closer
}

func openCommunicator() (*communication.StoreCommunicator, func(), error) {
	store, err := storage.New(config.GetStorageConfig())
	if err != nil {
		return nil, nil, err
	}
	return communication.NewStoreCommunicator(store), func() { store.Close() }, nil
}

func serve(args []string, collector metrics.Collector) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", config.GetString("listenAddr"), "Address to listen on")
	flags.Parse(args)

	comm, closeStore, err := openCommunicator()
	if err != nil {
		return err
	}
	defer closeStore()

	return server.NewServer(comm, collector).Start(*addr)
}

func newGame(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("new", flag.ExitOnError)
	seed := flags.Uint64("seed", 0, "Deck seed, random when 0")
	playerID := flags.String("player", "", "Id of the first player, random when empty")
	name := flags.String("name", "", "Name of the first player")
	flags.Parse(args)

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	if *playerID == "" {
		*playerID = uuid.New().String()
	}

	comm, closeStore, err := openCommunicator()
	if err != nil {
		return err
	}
	defer closeStore()

	id := uuid.New().String()
	if err := comm.CreateGame(ctx, id, gamemaster.NewGame(*seed, gamemaster.Player{ID: *playerID, Name: *name})); err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]any{"id": id, "seed": *seed, "player": *playerID})
}

func parseSeats(bots string) []engine.Seat {
	var seats []engine.Seat
	for i, kind := range strings.Split(bots, ",") {
		bot := metrics.BotConfig{ID: i + 1, Kind: strings.TrimSpace(kind), Seed: uint64(i + 1)}
		seats = append(seats, engine.Seat{
			Player: gamemaster.Player{ID: fmt.Sprintf("p%d-%s", i+1, bot.Kind), Name: bot.Kind},
			Bot:    player.New(bot),
		})
	}
	return seats
}

func simulate(ctx context.Context, args []string, collector metrics.Collector) error {
	flags := flag.NewFlagSet("simulate", flag.ExitOnError)
	seed := flags.Uint64("seed", 1, "Deck seed")
	bots := flags.String("bots", "greedy,random", "Comma separated bot kinds, one seat each")
	serverURL := flags.String("server", "", "Play against a game server instead of in memory")
	flags.Parse(args)

	seats := parseSeats(*bots)

	var e *engine.Engine
	if *serverURL == "" {
		var err error
		if e, err = engine.LocalEngine(ctx, *seed, seats, collector); err != nil {
			return err
		}
	} else {
		c := client.New(*serverURL)
		gameID, _, err := c.NewGame(ctx, *seed, seats[0].Player)
		if err != nil {
			return err
		}
		for _, seat := range seats[1:] {
			if err := c.Join(ctx, gameID, seat.Player); err != nil {
				return err
			}
		}
		e = engine.NewEngine(c, gameID, *seed, seats)
	}

	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("game", e.GameID).Str("winner", winner).Int("moves", gameMetric.TotalMoves).
		Int("decisions", len(moveMetrics)).Dur("duration", gameMetric.Duration).Msg("simulation done")
	return nil
}

func experiment(ctx context.Context, args []string, collector metrics.Collector) error {
	flags := flag.NewFlagSet("experiment", flag.ExitOnError)
	games := flags.Int("games", meta.GAMES_PER_MATCHUP, "Games per match up")
	goroutines := flags.Int("goroutines", meta.GO_ROUTINES, "Games played in parallel")
	throughput := flags.Bool("throughput", false, "Compare greedy mirror games across goroutine counts instead")
	dir := flags.String("out", config.GetString("metrics.csvDir"), "Folder for the CSV records")
	flags.Parse(args)

	if *throughput {
		_, err := experiments.RunThroughputExperiment(ctx, *dir, *games, []int{1, 2, 4, *goroutines})
		return err
	}
	_, err := experiments.RunBotMatchups(ctx, *dir, *games, *goroutines, collector)
	return err
}
