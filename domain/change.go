package domain

import "time"

// Change operations published on the realtime feed.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// ChangeEvent describes a row-level change applied to a content table.
type ChangeEvent struct {
	ID        string    `json:"id"`
	Table     string    `json:"table"`
	Operation string    `json:"operation"`
	RowID     string    `json:"row_id"`
	CreatedAt time.Time `json:"created_at"`
}
