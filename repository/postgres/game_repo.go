package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

type gameRepository struct {
	pool *pgxpool.Pool
}

// NewBestGameRepository returns a Postgres-backed implementation of BestGameRepository.
func NewBestGameRepository(pool *pgxpool.Pool) repository.BestGameRepository {
	return &gameRepository{pool: pool}
}

const gameColumns = `id, format, phase, tournament, image_url, replay_url, players, description_it, description_en, created_at, updated_at`

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.BestGame, error) {
	return scanGame(r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM best_games WHERE id = $1`, id))
}

func (r *gameRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.BestGame, error) {
	query := `SELECT ` + gameColumns + ` FROM best_games ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []domain.BestGame{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

func (r *gameRepository) Create(ctx context.Context, game *domain.BestGame) (*domain.BestGame, error) {
	if game == nil {
		return nil, domain.ErrInvalidPayload
	}
	if game.ID == "" {
		game.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO best_games (id, format, phase, tournament, image_url, replay_url, players, description_it, description_en)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		game.ID,
		game.Format,
		game.Phase,
		game.Tournament,
		game.ImageURL,
		game.ReplayURL,
		game.Players,
		game.DescriptionIT,
		game.DescriptionEN,
	).Scan(&game.CreatedAt, &game.UpdatedAt); err != nil {
		return nil, err
	}
	return game, nil
}

func (r *gameRepository) Update(ctx context.Context, game *domain.BestGame) error {
	if game == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE best_games
	SET format = $2,
		phase = $3,
		tournament = $4,
		image_url = $5,
		replay_url = $6,
		players = $7,
		description_it = $8,
		description_en = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		game.ID,
		game.Format,
		game.Phase,
		game.Tournament,
		game.ImageURL,
		game.ReplayURL,
		game.Players,
		game.DescriptionIT,
		game.DescriptionEN,
	).Scan(&game.CreatedAt, &game.UpdatedAt); err != nil {
		return notFound(err, domain.ErrGameNotFound)
	}
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM best_games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func scanGame(row scanner) (*domain.BestGame, error) {
	var game domain.BestGame
	if err := row.Scan(
		&game.ID,
		&game.Format,
		&game.Phase,
		&game.Tournament,
		&game.ImageURL,
		&game.ReplayURL,
		&game.Players,
		&game.DescriptionIT,
		&game.DescriptionEN,
		&game.CreatedAt,
		&game.UpdatedAt,
	); err != nil {
		return nil, notFound(err, domain.ErrGameNotFound)
	}
	return &game, nil
}
