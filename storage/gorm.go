package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cartographers/config"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GameRecord is one row of the game_records table.
type GameRecord struct {
	ID        string         `json:"id" gorm:"primaryKey;size:64"`
	State     datatypes.JSON `json:"state"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// GormStore keeps games in a SQL database, one JSON document per row.
type GormStore struct {
	mu sync.Mutex
	db *gorm.DB
}

// NewGormStore migrates the schema on db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate game_records table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// OpenSqlite opens a SQLite database at path, or a shared in-memory one when path is empty.
func OpenSqlite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, fmt.Errorf("error setting PRAGMA: %w", err)
	}
	log.Info().Str("path", dsn).Msg("Using SQLite game store")
	return db, nil
}

// OpenPostgres connects to the database described by cfg.
func OpenPostgres(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Using Postgres game store")
	return db, nil
}

func (s *GormStore) Get(ctx context.Context, id string) ([]byte, error) {
	var record GameRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}
	return []byte(record.State), nil
}

func (s *GormStore) Create(ctx context.Context, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&GameRecord{ID: id, State: datatypes.JSON(value)})
	if result.Error != nil {
		return fmt.Errorf("failed to create game %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	return nil
}

func (s *GormStore) Put(ctx context.Context, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&GameRecord{ID: id, State: datatypes.JSON(value)}).Error
	if err != nil {
		return fmt.Errorf("failed to store game %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := s.db.WithContext(ctx).Model(&GameRecord{}).Order("id").Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return ids, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
