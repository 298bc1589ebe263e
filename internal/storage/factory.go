package storage

import (
	"fmt"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/config"
)

// New selects the backend from config: "file" (embedded JSON) or "postgres".
func New(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStore(cfg.FileUsers, cfg.FileJournal, cfg.FileGoals, logger)
	case "postgres":
		return NewPostgresStore(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
