// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/xiaot623/termmon/internal/domain"
)

// Store defines the interface for command persistence.
type Store interface {
	// InsertCommand appends cmd, sets cmd.ID and returns it.
	InsertCommand(ctx context.Context, cmd *domain.Command) (int64, error)
	// RecentCommands returns up to limit commands, most recent first.
	RecentCommands(ctx context.Context, limit int) ([]domain.Command, error)
	CountCommands(ctx context.Context) (int64, error)

	// Lifecycle
	Close() error
}
