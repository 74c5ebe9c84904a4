package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

const (
	uniqueViolation = "23505"
	adminColumns    = `id, email, is_active, created_at, password_hash`
)

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates a Postgres-backed admin repository.
func NewAdminRepository(pool *pgxpool.Pool) repository.AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE lower(email) = lower($1)`, email))
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []domain.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *admin)
	}
	return admins, rows.Err()
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if admin == nil || admin.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO admins (id, email, is_active, created_at, password_hash)
	VALUES ($1, $2, $3, COALESCE($4, NOW()), $5)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		admin.IsActive,
		nullTime(admin.CreatedAt),
		admin.PasswordHash,
	).Scan(&admin.CreatedAt); err != nil {
		return translateAdminError(err)
	}
	return nil
}

func (r *adminRepository) SetPassword(ctx context.Context, id, hash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admins SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *adminRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admins SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func scanAdmin(row scanner) (*domain.Admin, error) {
	var admin domain.Admin
	if err := row.Scan(&admin.ID, &admin.Email, &admin.IsActive, &admin.CreatedAt, &admin.PasswordHash); err != nil {
		return nil, translateAdminError(err)
	}
	return &admin, nil
}

// translateAdminError maps driver errors onto domain errors.
func translateAdminError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAdminExists
	}
	return notFound(err, domain.ErrAdminNotFound)
}
