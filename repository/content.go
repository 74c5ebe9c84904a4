package repository

import (
	"context"

	"github.com/judgmentfleet/site/domain"
)

type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
}

type BestGameRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BestGame, error)
	List(ctx context.Context, filter ListFilter) ([]domain.BestGame, error)
	Create(ctx context.Context, game *domain.BestGame) (*domain.BestGame, error)
	Update(ctx context.Context, game *domain.BestGame) error
	Delete(ctx context.Context, id string) error
}

type FAQRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FAQ, error)
	List(ctx context.Context, filter ListFilter) ([]domain.FAQ, error)
	MaxPosition(ctx context.Context) (int, error)
	Create(ctx context.Context, faq *domain.FAQ) (*domain.FAQ, error)
	Update(ctx context.Context, faq *domain.FAQ) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type FooterResourceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FooterResource, error)
	List(ctx context.Context, filter ListFilter) ([]domain.FooterResource, error)
	MaxPosition(ctx context.Context) (int, error)
	Create(ctx context.Context, resource *domain.FooterResource) (*domain.FooterResource, error)
	Update(ctx context.Context, resource *domain.FooterResource) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
