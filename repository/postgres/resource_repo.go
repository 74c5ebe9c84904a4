package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewFooterResourceRepository returns a Postgres-backed implementation of FooterResourceRepository.
func NewFooterResourceRepository(pool *pgxpool.Pool) repository.FooterResourceRepository {
	return &resourceRepository{pool: pool}
}

const resourceColumns = `id, title_it, title_en, url, icon, category, position, is_active, created_at, updated_at`

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*domain.FooterResource, error) {
	return scanResource(r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM footer_resources WHERE id = $1`, id))
}

func (r *resourceRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.FooterResource, error) {
	query := `
	SELECT ` + resourceColumns + `
	FROM footer_resources
	WHERE ($1 = FALSE OR is_active)
	ORDER BY category ASC, position ASC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.ActiveOnly, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []domain.FooterResource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

func (r *resourceRepository) MaxPosition(ctx context.Context) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(position), -1) FROM footer_resources`).Scan(&max)
	return max, err
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.FooterResource) (*domain.FooterResource, error) {
	if res == nil {
		return nil, domain.ErrInvalidPayload
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO footer_resources (id, title_it, title_en, url, icon, category, position, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		res.ID,
		res.TitleIT,
		res.TitleEN,
		res.URL,
		nullString(res.Icon),
		res.Category,
		res.Position,
		res.IsActive,
	).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.FooterResource) error {
	if res == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE footer_resources
	SET title_it = $2,
		title_en = $3,
		url = $4,
		icon = $5,
		category = $6,
		position = $7,
		is_active = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		res.ID,
		res.TitleIT,
		res.TitleEN,
		res.URL,
		nullString(res.Icon),
		res.Category,
		res.Position,
		res.IsActive,
	).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return notFound(err, domain.ErrResourceNotFound)
	}
	return nil
}

func (r *resourceRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE footer_resources SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM footer_resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func scanResource(row scanner) (*domain.FooterResource, error) {
	var res domain.FooterResource
	var icon *string
	if err := row.Scan(
		&res.ID,
		&res.TitleIT,
		&res.TitleEN,
		&res.URL,
		&icon,
		&res.Category,
		&res.Position,
		&res.IsActive,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, notFound(err, domain.ErrResourceNotFound)
	}
	if icon != nil {
		res.Icon = *icon
	}
	return &res, nil
}
