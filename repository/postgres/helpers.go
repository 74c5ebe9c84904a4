package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// notFound turns an empty result into the table's not-found error.
func notFound(err, missing error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return missing
	}
	return err
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
