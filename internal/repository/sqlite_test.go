package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaot623/termmon/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCommand(text string, ts time.Time) *domain.Command {
	return &domain.Command{
		SessionID: "session_id",
		Index:     1,
		Command:   text,
		Pwd:       "/",
		Status:    0,
		Timestamp: ts,
	}
}

func TestSQLiteStoreInsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := newCommand("echo foo", time.Now())
	id1, err := store.InsertCommand(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, id1, first.ID)

	second := newCommand("echo bar", time.Now())
	id2, err := store.InsertCommand(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestSQLiteStoreRecentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	cmd1 := newCommand("echo foo", now)
	cmd2 := newCommand("echo bar", now.Add(time.Millisecond))
	cmd2.Index = 2
	cmd2.Status = 127
	cmd2.Pwd = "/home/user/src"

	_, err := store.InsertCommand(ctx, cmd1)
	require.NoError(t, err)
	_, err = store.InsertCommand(ctx, cmd2)
	require.NoError(t, err)

	commands, err := store.RecentCommands(ctx, domain.RecentWindow)
	require.NoError(t, err)
	require.Len(t, commands, 2)

	got := commands[0]
	assert.Equal(t, cmd2.ID, got.ID)
	assert.Equal(t, "echo bar", got.Command)
	assert.Equal(t, uint32(2), got.Index)
	assert.Equal(t, uint32(127), got.Status)
	assert.Equal(t, "/home/user/src", got.Pwd)
	assert.True(t, cmd2.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, time.UTC, got.Timestamp.Location())
	assert.Equal(t, "echo foo", commands[1].Command)
}

func TestSQLiteStoreRecentWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 600; i++ {
		// pairs of records share a timestamp
		ts := base.Add(time.Duration(i/2) * time.Second)
		_, err := store.InsertCommand(ctx, newCommand(fmt.Sprintf("cmd %d", i), ts))
		require.NoError(t, err)
	}

	commands, err := store.RecentCommands(ctx, domain.RecentWindow)
	require.NoError(t, err)
	require.Len(t, commands, 500)

	assert.Equal(t, "cmd 599", commands[0].Command)
	assert.Equal(t, "cmd 598", commands[1].Command)
	assert.Equal(t, "cmd 100", commands[499].Command)
	for i := 1; i < len(commands); i++ {
		assert.Greater(t, commands[i-1].ID, commands[i].ID)
	}
}

func TestSQLiteStoreOrdersByTimestampNotID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	_, err := store.InsertCommand(ctx, newCommand("later", now))
	require.NoError(t, err)
	_, err = store.InsertCommand(ctx, newCommand("earlier", now.Add(-time.Hour)))
	require.NoError(t, err)

	commands, err := store.RecentCommands(ctx, 1)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, "later", commands[0].Command)
}

func TestSQLiteStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	commands, err := store.RecentCommands(ctx, domain.RecentWindow)
	require.NoError(t, err)
	assert.Empty(t, commands)

	n, err := store.CountCommands(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "termmon.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.InsertCommand(ctx, newCommand("echo foo", time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.CountCommands(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cmd := newCommand("echo bar", time.Now())
	id, err := store.InsertCommand(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestSQLiteStoreClosedReturnsError(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.InsertCommand(context.Background(), newCommand("echo foo", time.Now()))
	assert.Error(t, err)
	_, err = store.RecentCommands(context.Background(), 1)
	assert.Error(t, err)
}
