package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

type faqRepository struct {
	pool *pgxpool.Pool
}

// NewFAQRepository returns a Postgres-backed implementation of FAQRepository.
func NewFAQRepository(pool *pgxpool.Pool) repository.FAQRepository {
	return &faqRepository{pool: pool}
}

const faqColumns = `id, question_it, question_en, answer_it, answer_en, position, is_active, created_at, updated_at`

func (r *faqRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	return scanFAQ(r.pool.QueryRow(ctx, `SELECT `+faqColumns+` FROM faqs WHERE id = $1`, id))
}

func (r *faqRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.FAQ, error) {
	query := `
	SELECT ` + faqColumns + `
	FROM faqs
	WHERE ($1 = FALSE OR is_active)
	ORDER BY position ASC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.ActiveOnly, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := []domain.FAQ{}
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, *faq)
	}
	return faqs, rows.Err()
}

func (r *faqRepository) MaxPosition(ctx context.Context) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(position), -1) FROM faqs`).Scan(&max)
	return max, err
}

func (r *faqRepository) Create(ctx context.Context, faq *domain.FAQ) (*domain.FAQ, error) {
	if faq == nil {
		return nil, domain.ErrInvalidPayload
	}
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO faqs (id, question_it, question_en, answer_it, answer_en, position, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		faq.ID,
		faq.QuestionIT,
		faq.QuestionEN,
		faq.AnswerIT,
		faq.AnswerEN,
		faq.Position,
		faq.IsActive,
	).Scan(&faq.CreatedAt, &faq.UpdatedAt); err != nil {
		return nil, err
	}
	return faq, nil
}

func (r *faqRepository) Update(ctx context.Context, faq *domain.FAQ) error {
	if faq == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE faqs
	SET question_it = $2,
		question_en = $3,
		answer_it = $4,
		answer_en = $5,
		position = $6,
		is_active = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		faq.ID,
		faq.QuestionIT,
		faq.QuestionEN,
		faq.AnswerIT,
		faq.AnswerEN,
		faq.Position,
		faq.IsActive,
	).Scan(&faq.CreatedAt, &faq.UpdatedAt); err != nil {
		return notFound(err, domain.ErrFAQNotFound)
	}
	return nil
}

func (r *faqRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE faqs SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

func scanFAQ(row scanner) (*domain.FAQ, error) {
	var faq domain.FAQ
	if err := row.Scan(
		&faq.ID,
		&faq.QuestionIT,
		&faq.QuestionEN,
		&faq.AnswerIT,
		&faq.AnswerEN,
		&faq.Position,
		&faq.IsActive,
		&faq.CreatedAt,
		&faq.UpdatedAt,
	); err != nil {
		return nil, notFound(err, domain.ErrFAQNotFound)
	}
	return &faq, nil
}
