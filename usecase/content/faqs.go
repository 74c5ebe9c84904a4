package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
	"github.com/judgmentfleet/site/usecase"
)

type FAQInput struct {
	QuestionIT string
	QuestionEN string
	AnswerIT   string
	AnswerEN   string
}

func (in FAQInput) validate() error {
	fields := []struct{ name, value string }{
		{"question_it", in.QuestionIT},
		{"question_en", in.QuestionEN},
		{"answer_it", in.AnswerIT},
		{"answer_en", in.AnswerEN},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Invalid(f.name, "is required")
		}
	}
	return nil
}

func (uc *UseCase) ListFAQs(ctx context.Context, activeOnly bool) ([]domain.FAQ, error) {
	return uc.repos.FAQs.List(ctx, repository.ListFilter{ActiveOnly: activeOnly})
}

// CreateFAQ appends the FAQ after the current last position.
func (uc *UseCase) CreateFAQ(ctx context.Context, in FAQInput) (*domain.FAQ, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	faq := &domain.FAQ{
		ID:         uuid.NewString(),
		QuestionIT: strings.TrimSpace(in.QuestionIT),
		QuestionEN: strings.TrimSpace(in.QuestionEN),
		AnswerIT:   strings.TrimSpace(in.AnswerIT),
		AnswerEN:   strings.TrimSpace(in.AnswerEN),
		Position:   unplaced,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.write(ctx, domain.TableFAQs, usecase.OperationCreate, faq.ID, faq, func() error {
		return uc.appendFAQ(ctx, faq)
	})
	if err != nil {
		return nil, err
	}
	return faq, nil
}

// appendFAQ stores faq after the current last position. On failure Position
// is reset to unplaced so a replay appends at replay time.
func (uc *UseCase) appendFAQ(ctx context.Context, faq *domain.FAQ) error {
	position, err := uc.repos.FAQs.MaxPosition(ctx)
	if err != nil {
		return err
	}
	faq.Position = position + 1
	created, err := uc.repos.FAQs.Create(ctx, faq)
	if err != nil {
		faq.Position = unplaced
		return err
	}
	if created != nil {
		*faq = *created
	}
	return nil
}

func (uc *UseCase) UpdateFAQ(ctx context.Context, id string, in FAQInput) (*domain.FAQ, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	faq, err := uc.repos.FAQs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	faq.QuestionIT = strings.TrimSpace(in.QuestionIT)
	faq.QuestionEN = strings.TrimSpace(in.QuestionEN)
	faq.AnswerIT = strings.TrimSpace(in.AnswerIT)
	faq.AnswerEN = strings.TrimSpace(in.AnswerEN)
	faq.UpdatedAt = time.Now().UTC()

	err = uc.write(ctx, domain.TableFAQs, usecase.OperationUpdate, id, faq, func() error {
		return uc.repos.FAQs.Update(ctx, faq)
	})
	if err != nil {
		return nil, err
	}
	return faq, nil
}

// ToggleFAQ flips the visibility of the FAQ on the public site.
func (uc *UseCase) ToggleFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := uc.repos.FAQs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	faq.IsActive = !faq.IsActive

	ref := activeRef{ID: id, Active: faq.IsActive}
	err = uc.write(ctx, domain.TableFAQs, usecase.OperationSetActive, id, ref, func() error {
		return uc.repos.FAQs.SetActive(ctx, id, faq.IsActive)
	})
	if err != nil {
		return nil, err
	}
	return faq, nil
}

func (uc *UseCase) DeleteFAQ(ctx context.Context, id string) error {
	return uc.write(ctx, domain.TableFAQs, usecase.OperationDelete, id, rowRef{ID: id}, func() error {
		return uc.repos.FAQs.Delete(ctx, id)
	})
}
