package backend

import (
	"fmt"
	"log/slog"

	"trendly/internal/kv"
	"trendly/internal/kv/file"
	"trendly/internal/kv/memory"
	"trendly/internal/kv/sqlite"
)

// Open creates the kv.Store described by config. Callers own the returned
// store and must Close it.
func Open(config Config, logger *slog.Logger) (kv.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLite:
		slots, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return slots, nil

	case File:
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		slots, err := file.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		logger.Info("Initialized file backend", "data_directory", dataDir)
		return slots, nil

	default:
		logger.Info("Initialized memory backend")
		return memory.New(), nil
	}
}
