package usecase

import (
	"context"
)

// Write operations that can be buffered and replayed.
const (
	OperationCreate    = "create"
	OperationUpdate    = "update"
	OperationDelete    = "delete"
	OperationSetActive = "set_active"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
// While Pending is non-zero new writes must go through BufferWrite to keep replay order.
type OperationBuffer interface {
	BufferWrite(ctx context.Context, table, operation, rowID string, payload interface{}) error
	Pending() int
}

// ReplayCommand names the dispatcher command that replays a buffered write.
func ReplayCommand(table, operation string) string {
	return table + "." + operation
}
