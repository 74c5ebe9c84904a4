package content

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
	"github.com/judgmentfleet/site/usecase"
)

type GameInput struct {
	Format        string
	Phase         string
	Tournament    string
	ImageURL      string
	ReplayURL     string
	Players       string
	DescriptionIT string
	DescriptionEN string
}

func (in GameInput) validate() error {
	if strings.TrimSpace(in.Tournament) == "" {
		return domain.Invalid("tournament", "is required")
	}
	if strings.TrimSpace(in.Players) == "" {
		return domain.Invalid("players", "is required")
	}
	if err := checkURL("replay_url", in.ReplayURL, true); err != nil {
		return err
	}
	return checkURL("image_url", in.ImageURL, false)
}

func (in GameInput) toGame(id string) *domain.BestGame {
	return &domain.BestGame{
		ID:            id,
		Format:        strings.TrimSpace(in.Format),
		Phase:         strings.TrimSpace(in.Phase),
		Tournament:    strings.TrimSpace(in.Tournament),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		ReplayURL:     strings.TrimSpace(in.ReplayURL),
		Players:       strings.TrimSpace(in.Players),
		DescriptionIT: in.DescriptionIT,
		DescriptionEN: in.DescriptionEN,
	}
}

func checkURL(field, raw string, required bool) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return domain.Invalid(field, "is required")
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domain.Invalid(field, "must be an http(s) URL")
	}
	return nil
}

func (uc *UseCase) ListGames(ctx context.Context) ([]domain.BestGame, error) {
	return uc.repos.Games.List(ctx, repository.ListFilter{})
}

func (uc *UseCase) CreateGame(ctx context.Context, in GameInput) (*domain.BestGame, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	game := in.toGame(uuid.NewString())
	game.CreatedAt = time.Now().UTC()
	game.UpdatedAt = game.CreatedAt

	err := uc.write(ctx, domain.TableBestGames, usecase.OperationCreate, game.ID, game, func() error {
		created, err := uc.repos.Games.Create(ctx, game)
		if err == nil && created != nil {
			game = created
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (uc *UseCase) UpdateGame(ctx context.Context, id string, in GameInput) (*domain.BestGame, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	game := in.toGame(id)
	game.UpdatedAt = time.Now().UTC()

	err := uc.write(ctx, domain.TableBestGames, usecase.OperationUpdate, id, game, func() error {
		return uc.repos.Games.Update(ctx, game)
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (uc *UseCase) DeleteGame(ctx context.Context, id string) error {
	return uc.write(ctx, domain.TableBestGames, usecase.OperationDelete, id, rowRef{ID: id}, func() error {
		return uc.repos.Games.Delete(ctx, id)
	})
}
