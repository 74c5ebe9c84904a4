package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

type changeFeed struct {
	client  *redislib.Client
	channel string
	logger  *zap.Logger
}

// NewChangeFeed publishes and subscribes to content changes over a Redis channel.
func NewChangeFeed(client *redislib.Client, channel string, logger *zap.Logger) repository.ChangeFeed {
	if channel == "" {
		channel = "content_changes"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &changeFeed{client: client, channel: channel, logger: logger}
}

func (f *changeFeed) Publish(ctx context.Context, event domain.ChangeEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, f.channel, payload).Err()
}

func (f *changeFeed) Subscribe(ctx context.Context) (<-chan domain.ChangeEvent, func() error, error) {
	sub := f.client.Subscribe(ctx, f.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan domain.ChangeEvent, 16)
	go func() {
		defer close(out)
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event domain.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.logger.Warn("dropping malformed change event", zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, sub.Close, nil
}
