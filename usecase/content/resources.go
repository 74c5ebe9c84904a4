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

const defaultFooterCategory = "links"

type ResourceInput struct {
	TitleIT  string
	TitleEN  string
	URL      string
	Icon     string
	Category string
}

func (in ResourceInput) normalize() (ResourceInput, error) {
	in.TitleIT = strings.TrimSpace(in.TitleIT)
	in.TitleEN = strings.TrimSpace(in.TitleEN)
	in.URL = strings.TrimSpace(in.URL)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = defaultFooterCategory
	}

	if in.TitleIT == "" {
		return in, domain.Invalid("title_it", "is required")
	}
	if in.TitleEN == "" {
		return in, domain.Invalid("title_en", "is required")
	}
	if in.URL == "" {
		return in, domain.Invalid("url", "is required")
	}
	if !domain.IsFooterCategory(in.Category) {
		return in, domain.Invalid("category", "must be one of "+strings.Join(domain.FooterCategories, ", "))
	}
	return in, nil
}

func (uc *UseCase) ListResources(ctx context.Context, activeOnly bool) ([]domain.FooterResource, error) {
	return uc.repos.Resources.List(ctx, repository.ListFilter{ActiveOnly: activeOnly})
}

func (uc *UseCase) CreateResource(ctx context.Context, in ResourceInput) (*domain.FooterResource, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	resource := &domain.FooterResource{
		ID:        uuid.NewString(),
		TitleIT:   in.TitleIT,
		TitleEN:   in.TitleEN,
		URL:       in.URL,
		Icon:      in.Icon,
		Category:  in.Category,
		Position:  unplaced,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.write(ctx, domain.TableFooterResources, usecase.OperationCreate, resource.ID, resource, func() error {
		return uc.appendResource(ctx, resource)
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (uc *UseCase) appendResource(ctx context.Context, resource *domain.FooterResource) error {
	position, err := uc.repos.Resources.MaxPosition(ctx)
	if err != nil {
		return err
	}
	resource.Position = position + 1
	created, err := uc.repos.Resources.Create(ctx, resource)
	if err != nil {
		resource.Position = unplaced
		return err
	}
	if created != nil {
		*resource = *created
	}
	return nil
}

func (uc *UseCase) UpdateResource(ctx context.Context, id string, in ResourceInput) (*domain.FooterResource, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	resource, err := uc.repos.Resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.TitleIT = in.TitleIT
	resource.TitleEN = in.TitleEN
	resource.URL = in.URL
	resource.Icon = in.Icon
	resource.Category = in.Category
	resource.UpdatedAt = time.Now().UTC()

	err = uc.write(ctx, domain.TableFooterResources, usecase.OperationUpdate, id, resource, func() error {
		return uc.repos.Resources.Update(ctx, resource)
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (uc *UseCase) ToggleResource(ctx context.Context, id string) (*domain.FooterResource, error) {
	resource, err := uc.repos.Resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.IsActive = !resource.IsActive

	ref := activeRef{ID: id, Active: resource.IsActive}
	err = uc.write(ctx, domain.TableFooterResources, usecase.OperationSetActive, id, ref, func() error {
		return uc.repos.Resources.SetActive(ctx, id, resource.IsActive)
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (uc *UseCase) DeleteResource(ctx context.Context, id string) error {
	return uc.write(ctx, domain.TableFooterResources, usecase.OperationDelete, id, rowRef{ID: id}, func() error {
		return uc.repos.Resources.Delete(ctx, id)
	})
}
