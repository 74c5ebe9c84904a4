package content

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
	"github.com/judgmentfleet/site/usecase"
)

// Repositories groups the tables managed from the back-office.
type Repositories struct {
	Members   repository.MemberRepository
	Games     repository.BestGameRepository
	FAQs      repository.FAQRepository
	Resources repository.FooterResourceRepository
}

type UseCase struct {
	repos  Repositories
	buffer usecase.OperationBuffer
	feed   repository.ChangeFeed
	logger *zap.Logger
}

func New(repos Repositories, buffer usecase.OperationBuffer, feed repository.ChangeFeed, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		repos:  repos,
		buffer: buffer,
		feed:   feed,
		logger: logger,
	}
}

// unplaced marks a buffered create whose position is assigned on replay.
const unplaced = -1

type rowRef struct {
	ID string `json:"id"`
}

type activeRef struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// write applies a change and publishes it. Infrastructure failures are handed
// to the buffer; domain errors (not found, conflicts) are returned as is.
func (uc *UseCase) write(ctx context.Context, table, operation, rowID string, payload interface{}, apply func() error) error {
	if uc.buffer != nil && uc.buffer.Pending() > 0 {
		// queue behind earlier writes so replay keeps their order
		if uc.shouldBuffer(ctx, table, operation, rowID, payload) {
			return nil
		}
	}
	if err := apply(); err != nil {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return err
		}
		if uc.shouldBuffer(ctx, table, operation, rowID, payload) {
			return nil
		}
		return err
	}
	uc.publish(ctx, table, operation, rowID)
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, table, operation, rowID string, payload interface{}) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferWrite(ctx, table, operation, rowID, payload); err != nil {
		uc.logger.Error("failed to buffer content write",
			zap.String("table", table),
			zap.String("operation", operation),
			zap.Error(err))
		return false
	}
	uc.logger.Warn("content write buffered",
		zap.String("table", table),
		zap.String("operation", operation),
		zap.String("row_id", rowID))
	return true
}

func (uc *UseCase) publish(ctx context.Context, table, operation, rowID string) {
	if uc.feed == nil {
		return
	}
	event := domain.ChangeEvent{Table: table, Operation: changeName(operation), RowID: rowID}
	if err := uc.feed.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish content change", zap.String("table", table), zap.Error(err))
	}
}

func changeName(operation string) string {
	switch operation {
	case usecase.OperationCreate:
		return domain.ChangeInsert
	case usecase.OperationDelete:
		return domain.ChangeDelete
	default:
		return domain.ChangeUpdate
	}
}

// RegisterReplays lets the buffer processor re-apply writes captured while Postgres was down.
func (uc *UseCase) RegisterReplays(d *usecase.Dispatcher) {
	register := func(table, operation string, apply func(ctx context.Context, payload []byte) (string, error)) {
		d.RegisterCommand(usecase.ReplayCommand(table, operation), func(ctx context.Context, payload []byte) error {
			rowID, err := apply(ctx, payload)
			if err != nil {
				return err
			}
			uc.publish(ctx, table, operation, rowID)
			return nil
		})
	}

	register(domain.TableMembers, usecase.OperationCreate, func(ctx context.Context, p []byte) (string, error) {
		var m domain.Member
		if err := json.Unmarshal(p, &m); err != nil {
			return "", err
		}
		_, err := uc.repos.Members.Create(ctx, &m)
		return m.ID, err
	})
	register(domain.TableMembers, usecase.OperationUpdate, func(ctx context.Context, p []byte) (string, error) {
		var m domain.Member
		if err := json.Unmarshal(p, &m); err != nil {
			return "", err
		}
		return m.ID, uc.repos.Members.Update(ctx, &m)
	})
	register(domain.TableMembers, usecase.OperationDelete, func(ctx context.Context, p []byte) (string, error) {
		return replayDelete(ctx, p, uc.repos.Members.Delete)
	})

	register(domain.TableBestGames, usecase.OperationCreate, func(ctx context.Context, p []byte) (string, error) {
		var g domain.BestGame
		if err := json.Unmarshal(p, &g); err != nil {
			return "", err
		}
		_, err := uc.repos.Games.Create(ctx, &g)
		return g.ID, err
	})
	register(domain.TableBestGames, usecase.OperationUpdate, func(ctx context.Context, p []byte) (string, error) {
		var g domain.BestGame
		if err := json.Unmarshal(p, &g); err != nil {
			return "", err
		}
		return g.ID, uc.repos.Games.Update(ctx, &g)
	})
	register(domain.TableBestGames, usecase.OperationDelete, func(ctx context.Context, p []byte) (string, error) {
		return replayDelete(ctx, p, uc.repos.Games.Delete)
	})

	register(domain.TableFAQs, usecase.OperationCreate, func(ctx context.Context, p []byte) (string, error) {
		var f domain.FAQ
		if err := json.Unmarshal(p, &f); err != nil {
			return "", err
		}
		if f.Position != unplaced {
			_, err := uc.repos.FAQs.Create(ctx, &f)
			return f.ID, err
		}
		return f.ID, uc.appendFAQ(ctx, &f)
	})
	register(domain.TableFAQs, usecase.OperationUpdate, func(ctx context.Context, p []byte) (string, error) {
		var f domain.FAQ
		if err := json.Unmarshal(p, &f); err != nil {
			return "", err
		}
		return f.ID, uc.repos.FAQs.Update(ctx, &f)
	})
	register(domain.TableFAQs, usecase.OperationSetActive, func(ctx context.Context, p []byte) (string, error) {
		return replaySetActive(ctx, p, uc.repos.FAQs.SetActive)
	})
	register(domain.TableFAQs, usecase.OperationDelete, func(ctx context.Context, p []byte) (string, error) {
		return replayDelete(ctx, p, uc.repos.FAQs.Delete)
	})

	register(domain.TableFooterResources, usecase.OperationCreate, func(ctx context.Context, p []byte) (string, error) {
		var r domain.FooterResource
		if err := json.Unmarshal(p, &r); err != nil {
			return "", err
		}
		if r.Position != unplaced {
			_, err := uc.repos.Resources.Create(ctx, &r)
			return r.ID, err
		}
		return r.ID, uc.appendResource(ctx, &r)
	})
	register(domain.TableFooterResources, usecase.OperationUpdate, func(ctx context.Context, p []byte) (string, error) {
		var r domain.FooterResource
		if err := json.Unmarshal(p, &r); err != nil {
			return "", err
		}
		return r.ID, uc.repos.Resources.Update(ctx, &r)
	})
	register(domain.TableFooterResources, usecase.OperationSetActive, func(ctx context.Context, p []byte) (string, error) {
		return replaySetActive(ctx, p, uc.repos.Resources.SetActive)
	})
	register(domain.TableFooterResources, usecase.OperationDelete, func(ctx context.Context, p []byte) (string, error) {
		return replayDelete(ctx, p, uc.repos.Resources.Delete)
	})
}

func replayDelete(ctx context.Context, payload []byte, del func(context.Context, string) error) (string, error) {
	var ref rowRef
	if err := json.Unmarshal(payload, &ref); err != nil {
		return "", err
	}
	err := del(ctx, ref.ID)
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		// already gone
		return ref.ID, nil
	}
	return ref.ID, err
}

func replaySetActive(ctx context.Context, payload []byte, set func(context.Context, string, bool) error) (string, error) {
	var ref activeRef
	if err := json.Unmarshal(payload, &ref); err != nil {
		return "", err
	}
	return ref.ID, set(ctx, ref.ID, ref.Active)
}
