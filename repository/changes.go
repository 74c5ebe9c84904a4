package repository

import (
	"context"

	"github.com/judgmentfleet/site/domain"
)

// ChangeFeed fans out row-level content changes to live subscribers.
type ChangeFeed interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
	// Subscribe delivers events until ctx is cancelled or the returned close func is called.
	Subscribe(ctx context.Context) (<-chan domain.ChangeEvent, func() error, error)
}
