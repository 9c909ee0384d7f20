package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cartographers/game"
)

// BotConfig identifies a bot in a simulation run.
type BotConfig struct {
	ID   int
	Kind string // greedy | random
	Seed uint64 // Only used by random bots
}

type GameRecord struct {
	ID   int
	Bot1 int // BotConfig.ID
	Bot2 int // BotConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type SeasonRecord struct {
	Game   int // GameRecord.ID
	Player string
	game.SeasonScore
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder for one simulation run under dir.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteBotConfigs(configs []BotConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.writeCSV("bot_configs.csv", []string{"id", "kind", "seed"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Bot1),
			strconv.Itoa(record.Bot2),
			strconv.FormatUint(record.Seed, 10),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	header := []string{"id", "bot1", "bot2", "seed", "winner", "start_time", "end_time", "duration", "total_moves"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Card,
			strconv.Itoa(record.Candidates),
			strconv.FormatBool(record.Discarded),
			record.Duration.String(),
		})
	}
	header := []string{"game", "step", "player", "card", "candidates", "discarded", "duration"}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSeasonRecords(records []SeasonRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			record.Player,
			record.Season.Name,
			strconv.Itoa(record.Coins),
			strconv.Itoa(record.MonsterScore),
			strconv.Itoa(record.TotalScore),
		})
	}
	header := []string{"game", "player", "season", "coins", "monster_score", "total_score"}
	return w.writeCSV("season_records.csv", header, rows)
}
