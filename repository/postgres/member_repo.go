package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation of MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) repository.MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
	SELECT id, name, image, role, join_date, achievements, created_at, updated_at
	FROM members
	WHERE id = $1
	`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *memberRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Member, error) {
	const query = `
	SELECT id, name, image, role, join_date, achievements, created_at, updated_at
	FROM members
	ORDER BY created_at ASC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}
	return members, rows.Err()
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, domain.ErrInvalidPayload
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO members (id, name, image, role, join_date, achievements)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		member.ID,
		member.Name,
		member.Image,
		member.Role,
		member.JoinDate,
		member.Achievements,
	).Scan(&member.CreatedAt, &member.UpdatedAt); err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	if member == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE members
	SET name = $2,
		image = $3,
		role = $4,
		join_date = $5,
		achievements = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		member.ID,
		member.Name,
		member.Image,
		member.Role,
		member.JoinDate,
		member.Achievements,
	).Scan(&member.CreatedAt, &member.UpdatedAt); err != nil {
		return notFound(err, domain.ErrMemberNotFound)
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func scanMember(row scanner) (*domain.Member, error) {
	var member domain.Member
	if err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Image,
		&member.Role,
		&member.JoinDate,
		&member.Achievements,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, notFound(err, domain.ErrMemberNotFound)
	}
	if member.Achievements == nil {
		member.Achievements = []string{}
	}
	return &member, nil
}
