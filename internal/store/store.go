// Package store selects a persistence backend from the configured
// database URL.
package store

import (
	"fmt"
	"strings"

	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/store/postgres"
	"github.com/crguezl/tinyclonec/internal/store/sqlite"
)

// Open connects the backend matching databaseURL: postgres:// and
// postgresql:// URLs go to PostgreSQL, anything else is treated as a
// SQLite path (":memory:" included). The backend applies its migrations
// before the store is returned.
func Open(databaseURL string) (core.Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		s, err := postgres.Open(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	}
	s, err := sqlite.Open(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return s, nil
}
