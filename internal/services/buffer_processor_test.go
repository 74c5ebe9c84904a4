package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgmentfleet/site/internal/infrastructure/buffer"
	"github.com/judgmentfleet/site/usecase"
)

type switchHealth struct{ online bool }

func (s *switchHealth) IsOnline() bool { return s.online }

type staticHealth bool

func (s staticHealth) IsOnline() bool { return bool(s) }

// rowTable registers create and delete replays over an in-memory row set.
func rowTable(d *usecase.Dispatcher, table string, fail func(op string) error) map[string]bool {
	rows := map[string]bool{}
	apply := func(op string, present bool) usecase.CommandHandler {
		return func(ctx context.Context, payload []byte) error {
			if err := fail(op); err != nil {
				return err
			}
			var ref struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(payload, &ref); err != nil {
				return err
			}
			if present {
				rows[ref.ID] = true
			} else {
				delete(rows, ref.ID)
			}
			return nil
		}
	}
	d.RegisterCommand(usecase.ReplayCommand(table, usecase.OperationCreate), apply(usecase.OperationCreate, true))
	d.RegisterCommand(usecase.ReplayCommand(table, usecase.OperationDelete), apply(usecase.OperationDelete, false))
	return rows
}

func newProcessor(t *testing.T, online bool, d *usecase.Dispatcher, cfg ProcessorConfig) (*BufferProcessor, *buffer.Store) {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewBufferProcessor(store, staticHealth(online), d, nil, cfg), store
}

func TestBufferWriteAppliesImmediatelyWhenOnline(t *testing.T) {
	d := usecase.NewDispatcher()
	var replayed []string
	d.RegisterCommand("faqs.create", func(ctx context.Context, payload []byte) error {
		replayed = append(replayed, string(payload))
		return nil
	})
	bp, _ := newProcessor(t, true, d, ProcessorConfig{})

	bridge := NewBufferBridge(bp)
	require.NoError(t, bridge.BufferWrite(context.Background(), "faqs", usecase.OperationCreate, "1", map[string]string{"id": "1"}))

	assert.Equal(t, []string{`{"id":"1"}`}, replayed)
	assert.Zero(t, bp.Size())
}

func TestBufferWriteQueuesWhenOffline(t *testing.T) {
	d := usecase.NewDispatcher()
	calls := 0
	d.RegisterCommand("members.delete", func(ctx context.Context, payload []byte) error {
		calls++
		return nil
	})
	bp, _ := newProcessor(t, false, d, ProcessorConfig{})

	require.NoError(t, NewBufferBridge(bp).BufferWrite(context.Background(), "members", usecase.OperationDelete, "m1", map[string]string{"id": "m1"}))
	assert.Equal(t, 1, bp.Size())
	assert.Zero(t, calls)

	// offline drains are skipped
	require.NoError(t, bp.Drain(context.Background()))
	assert.Equal(t, 1, bp.Size())
}

func TestDrainRetriesThenDrops(t *testing.T) {
	d := usecase.NewDispatcher()
	calls := 0
	d.RegisterCommand("faqs.update", func(ctx context.Context, payload []byte) error {
		calls++
		return errors.New("postgres still down")
	})
	bp, store := newProcessor(t, true, d, ProcessorConfig{MaxRetries: 2})
	_, err := store.Enqueue(buffer.Item{Entity: "faqs", Operation: "update", Data: []byte(`{}`)})
	require.NoError(t, err)

	require.NoError(t, bp.Drain(context.Background()))
	assert.Equal(t, 1, bp.Size())

	require.NoError(t, bp.Drain(context.Background()))
	assert.Zero(t, bp.Size())
	assert.Equal(t, 2, calls)
}

func TestBufferOperationRespectsMaxSize(t *testing.T) {
	bp, _ := newProcessor(t, false, usecase.NewDispatcher(), ProcessorConfig{MaxSize: 1})
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	require.NoError(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationCreate, "1", map[string]string{}))
	assert.Error(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationCreate, "2", map[string]string{}))
}

func TestDrainReplaysCreateThenDeleteInOrder(t *testing.T) {
	d := usecase.NewDispatcher()
	rows := rowTable(d, "faqs", func(string) error { return nil })
	health := &switchHealth{}
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	bp := NewBufferProcessor(store, health, d, nil, ProcessorConfig{})
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	require.NoError(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationCreate, "x", map[string]string{"id": "x"}))
	require.NoError(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationDelete, "x", map[string]string{"id": "x"}))
	assert.Equal(t, 2, bridge.Pending())

	health.online = true
	require.NoError(t, bp.Drain(ctx))

	assert.Empty(t, rows, "row created then deleted offline stays deleted")
	assert.Zero(t, bp.Size())
}

func TestDrainStopsAtFailedItem(t *testing.T) {
	d := usecase.NewDispatcher()
	createFails := true
	rows := rowTable(d, "members", func(op string) error {
		if op == usecase.OperationCreate && createFails {
			return errors.New("postgres still down")
		}
		return nil
	})
	bp, store := newProcessor(t, false, d, ProcessorConfig{MaxRetries: 3})
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	require.NoError(t, bridge.BufferWrite(ctx, "members", usecase.OperationCreate, "m1", map[string]string{"id": "m1"}))
	require.NoError(t, bridge.BufferWrite(ctx, "members", usecase.OperationDelete, "m1", map[string]string{"id": "m1"}))

	bp.monitor = staticHealth(true)
	require.NoError(t, bp.Drain(ctx))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2, "delete must not run ahead of the failed create")
	assert.Equal(t, usecase.OperationCreate, items[0].Operation)
	assert.Equal(t, 1, items[0].Retries)

	createFails = false
	require.NoError(t, bp.Drain(ctx))
	assert.Empty(t, rows)
	assert.Zero(t, bp.Size())
}

func TestBufferOperationQueuesBehindPendingItems(t *testing.T) {
	d := usecase.NewDispatcher()
	rows := rowTable(d, "faqs", func(string) error { return nil })
	bp, _ := newProcessor(t, false, d, ProcessorConfig{})
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	require.NoError(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationCreate, "x", map[string]string{"id": "x"}))

	bp.monitor = staticHealth(true)
	require.NoError(t, bridge.BufferWrite(ctx, "faqs", usecase.OperationDelete, "x", map[string]string{"id": "x"}))
	assert.Equal(t, 2, bp.Size(), "online write waits for the queued one")

	require.NoError(t, bp.Drain(ctx))
	assert.Empty(t, rows)
}
