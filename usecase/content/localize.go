package content

import (
	"context"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

// Public, single-language projections served to site visitors.

type PublicGame struct {
	ID          string `json:"id"`
	Format      string `json:"format"`
	Phase       string `json:"phase"`
	Tournament  string `json:"tournament"`
	ImageURL    string `json:"image_url"`
	ReplayURL   string `json:"replay_url"`
	Players     string `json:"players"`
	Description string `json:"description"`
}

type PublicFAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

type PublicResource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category"`
}

func (uc *UseCase) PublicMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := uc.repos.Members.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func (uc *UseCase) PublicGames(ctx context.Context, locale domain.Locale) ([]PublicGame, error) {
	games, err := uc.repos.Games.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]PublicGame, 0, len(games))
	for _, g := range games {
		out = append(out, PublicGame{
			ID:          g.ID,
			Format:      g.Format,
			Phase:       g.Phase,
			Tournament:  g.Tournament,
			ImageURL:    g.ImageURL,
			ReplayURL:   g.ReplayURL,
			Players:     g.Players,
			Description: locale.Pick(g.DescriptionIT, g.DescriptionEN),
		})
	}
	return out, nil
}

// PublicFAQs lists active FAQs in display order.
func (uc *UseCase) PublicFAQs(ctx context.Context, locale domain.Locale) ([]PublicFAQ, error) {
	faqs, err := uc.repos.FAQs.List(ctx, repository.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]PublicFAQ, 0, len(faqs))
	for _, f := range faqs {
		if !f.IsActive {
			continue
		}
		out = append(out, PublicFAQ{
			ID:       f.ID,
			Question: locale.Pick(f.QuestionIT, f.QuestionEN),
			Answer:   locale.Pick(f.AnswerIT, f.AnswerEN),
			Position: f.Position,
		})
	}
	return out, nil
}

// PublicResources groups active footer links by category.
func (uc *UseCase) PublicResources(ctx context.Context, locale domain.Locale) (map[string][]PublicResource, error) {
	resources, err := uc.repos.Resources.List(ctx, repository.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]PublicResource, len(domain.FooterCategories))
	for _, c := range domain.FooterCategories {
		out[c] = []PublicResource{}
	}
	for _, r := range resources {
		if !r.IsActive {
			continue
		}
		out[r.Category] = append(out[r.Category], PublicResource{
			ID:       r.ID,
			Title:    locale.Pick(r.TitleIT, r.TitleEN),
			URL:      r.URL,
			Icon:     r.Icon,
			Category: r.Category,
		})
	}
	return out, nil
}
