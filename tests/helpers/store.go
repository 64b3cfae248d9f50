// Package helpers provides fixtures shared by the package tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/xiaot623/termmon/internal/domain"
	"github.com/xiaot623/termmon/internal/repository"
)

// NewTestSQLiteStore returns an in-memory store closed at test cleanup.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedCommands inserts one command per text for session "seed", one second
// apart starting at base, and returns them in insertion order with ids set.
func SeedCommands(t *testing.T, s store.Store, base time.Time, texts ...string) []domain.Command {
	t.Helper()

	seeded := make([]domain.Command, 0, len(texts))
	for i, text := range texts {
		cmd := domain.Command{
			SessionID: "seed",
			Index:     uint32(i + 1),
			Command:   text,
			Pwd:       "/",
			Timestamp: base.Add(time.Duration(i) * time.Second).UTC(),
		}
		if _, err := s.InsertCommand(context.Background(), &cmd); err != nil {
			t.Fatalf("failed to seed command %q: %v", text, err)
		}
		seeded = append(seeded, cmd)
	}
	return seeded
}
