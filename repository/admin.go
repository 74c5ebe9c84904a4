package repository

import (
	"context"

	"github.com/judgmentfleet/site/domain"
)

type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// List returns admins ordered by creation, oldest first.
	List(ctx context.Context) ([]domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
	SetActive(ctx context.Context, id string, active bool) error
	SetPassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
