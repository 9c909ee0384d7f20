package storage

import (
	"fmt"

	"cartographers/config"
)

// New creates the store selected by cfg.Type.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "memory", "":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.File.DataDir)
	case "sqlite":
		db, err := OpenSqlite(cfg.Sqlite.Path)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	case "postgres":
		db, err := OpenPostgres(cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
