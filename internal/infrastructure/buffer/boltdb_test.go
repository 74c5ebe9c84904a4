package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBuffer(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestEnqueueKeepsWriteOrder(t *testing.T) {
	store := openBuffer(t)
	base := time.Now()

	// timestamps do not reorder the log
	_, err := store.Enqueue(Item{ID: "create", Entity: "faqs", Operation: "create", Data: json.RawMessage(`{}`), Timestamp: base.Add(time.Second)})
	require.NoError(t, err)
	_, err = store.Enqueue(Item{ID: "update", Entity: "faqs", Operation: "update", Data: json.RawMessage(`{}`), Timestamp: base})
	require.NoError(t, err)
	_, err = store.Enqueue(Item{ID: "delete", Entity: "faqs", Operation: "delete", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "update", "delete"}, ids(items))
	assert.Less(t, items[0].Seq, items[1].Seq)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestRetryKeepsPosition(t *testing.T) {
	store := openBuffer(t)
	_, err := store.Enqueue(Item{ID: "a", Entity: "faqs", Operation: "update", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)
	_, err = store.Enqueue(Item{ID: "b", Entity: "faqs", Operation: "delete", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	item.Retries++
	require.NoError(t, store.Retry(item))

	items, err = store.GetBatch(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(items))
	assert.Equal(t, 1, items[0].Retries)

	assert.ErrorIs(t, store.Retry(Item{ID: "c"}), ErrUnknownItem)
}

func TestRemove(t *testing.T) {
	store := openBuffer(t)
	seq, err := store.Enqueue(Item{ID: "a", Entity: "faqs", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)
	_, err = store.Enqueue(Item{ID: "b", Entity: "faqs", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, store.Remove(Item{Seq: seq}))
	require.NoError(t, store.Remove(Item{ID: "b"}))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestCleanupDropsOldItems(t *testing.T) {
	store := openBuffer(t)
	now := time.Now()
	for _, item := range []Item{
		{ID: "old-1", Timestamp: now.Add(-48 * time.Hour)},
		{ID: "old-2", Timestamp: now.Add(-30 * time.Hour)},
		{ID: "new", Timestamp: now},
	} {
		item.Entity = "faqs"
		item.Data = json.RawMessage(`{}`)
		_, err := store.Enqueue(item)
		require.NoError(t, err)
	}

	removed, err := store.Cleanup(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(items))
}
