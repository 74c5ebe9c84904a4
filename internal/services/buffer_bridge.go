package services

import (
	"context"
	"encoding/json"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/internal/infrastructure/buffer"
	"github.com/judgmentfleet/site/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferWrite(ctx context.Context, table, operation, rowID string, payload interface{}) error {
	if b.processor == nil || payload == nil {
		return domain.ErrInvalidPayload
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	item := buffer.Item{
		Entity:    table,
		Operation: operation,
		RowID:     rowID,
		Data:      data,
	}
	return b.processor.BufferOperation(ctx, item)
}

// Pending reports how many writes are waiting for replay.
func (b *BufferBridge) Pending() int {
	return b.processor.Size()
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
