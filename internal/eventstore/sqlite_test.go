package eventstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndGetByBuildID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "b1", EventBuildStarted, []byte(`{}`), nil))
	require.NoError(t, store.Append(ctx, "b1", EventBuildCompleted, []byte(`{"pages":4}`),
		map[string]string{"trigger": "manual"}))
	require.NoError(t, store.Append(ctx, "b2", EventBuildStarted, []byte(`{}`), nil))

	events, err := store.GetByBuildID(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventBuildStarted, events[0].EventType)
	assert.Equal(t, EventBuildCompleted, events[1].EventType)
	assert.Equal(t, "manual", events[1].Metadata["trigger"])
	assert.Equal(t, []byte(`{"pages":4}`), events[1].Payload)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestGetRecentNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, store.Append(ctx, id, EventBuildStarted, []byte(`{}`), nil))
	}

	events, err := store.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b3", events[0].BuildID)
	assert.Equal(t, "b2", events[1].BuildID)
}

func TestGetRecentDefaultLimit(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Append(context.Background(), "b1", EventBuildStarted, []byte(`{}`), nil))

	events, err := store.GetRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPersistentFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), "b1", EventBuildCompleted, []byte(`{}`), nil))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByBuildID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
