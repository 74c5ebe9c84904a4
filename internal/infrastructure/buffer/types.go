package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a content write that could not reach Postgres and waits for replay.
// Entity is the table name; Operation is one of the usecase operation names.
type Item struct {
	ID        string          `json:"id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	RowID     string          `json:"row_id,omitempty"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	// Seq is the position in the replay log, assigned on Enqueue.
	Seq uint64 `json:"-"`
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
