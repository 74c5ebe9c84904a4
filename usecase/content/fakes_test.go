package content

import (
	"context"
	"errors"
	"sort"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

var errDown = errors.New("connection refused")

type memberRepo struct {
	rows map[string]domain.Member
	err  error
}

func newMemberRepo() *memberRepo { return &memberRepo{rows: map[string]domain.Member{}} }

func (r *memberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return &m, nil
}

func (r *memberRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.Member, error) {
	out := []domain.Member{}
	for _, m := range r.rows {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memberRepo) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rows[m.ID] = *m
	return m, nil
}

func (r *memberRepo) Update(ctx context.Context, m *domain.Member) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[m.ID]; !ok {
		return domain.ErrMemberNotFound
	}
	r.rows[m.ID] = *m
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.rows, id)
	return nil
}

type gameRepo struct {
	rows []domain.BestGame
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*domain.BestGame, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			g := r.rows[i]
			return &g, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (r *gameRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.BestGame, error) {
	return append([]domain.BestGame(nil), r.rows...), nil
}

func (r *gameRepo) Create(ctx context.Context, g *domain.BestGame) (*domain.BestGame, error) {
	r.rows = append([]domain.BestGame{*g}, r.rows...)
	return g, nil
}

func (r *gameRepo) Update(ctx context.Context, g *domain.BestGame) error {
	for i := range r.rows {
		if r.rows[i].ID == g.ID {
			r.rows[i] = *g
			return nil
		}
	}
	return domain.ErrGameNotFound
}

func (r *gameRepo) Delete(ctx context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrGameNotFound
}

type faqRepo struct {
	rows   []domain.FAQ
	err    error
	maxErr error
}

func (r *faqRepo) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			f := r.rows[i]
			return &f, nil
		}
	}
	return nil, domain.ErrFAQNotFound
}

func (r *faqRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.FAQ, error) {
	out := []domain.FAQ{}
	for _, f := range r.rows {
		if filter.ActiveOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *faqRepo) MaxPosition(ctx context.Context) (int, error) {
	if r.maxErr != nil {
		return 0, r.maxErr
	}
	max := -1
	for _, f := range r.rows {
		if f.Position > max {
			max = f.Position
		}
	}
	return max, nil
}

func (r *faqRepo) Create(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rows = append(r.rows, *f)
	return f, nil
}

func (r *faqRepo) Update(ctx context.Context, f *domain.FAQ) error {
	for i := range r.rows {
		if r.rows[i].ID == f.ID {
			r.rows[i] = *f
			return nil
		}
	}
	return domain.ErrFAQNotFound
}

func (r *faqRepo) SetActive(ctx context.Context, id string, active bool) error {
	if r.err != nil {
		return r.err
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].IsActive = active
			return nil
		}
	}
	return domain.ErrFAQNotFound
}

func (r *faqRepo) Delete(ctx context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrFAQNotFound
}

type resourceRepo struct {
	rows []domain.FooterResource
}

func (r *resourceRepo) GetByID(ctx context.Context, id string) (*domain.FooterResource, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			res := r.rows[i]
			return &res, nil
		}
	}
	return nil, domain.ErrResourceNotFound
}

func (r *resourceRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.FooterResource, error) {
	out := []domain.FooterResource{}
	for _, res := range r.rows {
		if filter.ActiveOnly && !res.IsActive {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *resourceRepo) MaxPosition(ctx context.Context) (int, error) {
	max := -1
	for _, res := range r.rows {
		if res.Position > max {
			max = res.Position
		}
	}
	return max, nil
}

func (r *resourceRepo) Create(ctx context.Context, res *domain.FooterResource) (*domain.FooterResource, error) {
	r.rows = append(r.rows, *res)
	return res, nil
}

func (r *resourceRepo) Update(ctx context.Context, res *domain.FooterResource) error {
	for i := range r.rows {
		if r.rows[i].ID == res.ID {
			r.rows[i] = *res
			return nil
		}
	}
	return domain.ErrResourceNotFound
}

func (r *resourceRepo) SetActive(ctx context.Context, id string, active bool) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].IsActive = active
			return nil
		}
	}
	return domain.ErrResourceNotFound
}

func (r *resourceRepo) Delete(ctx context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrResourceNotFound
}

type bufferedWrite struct {
	table, operation, rowID string
	payload                 interface{}
}

type recordingBuffer struct {
	writes  []bufferedWrite
	err     error
	pending int
}

func (b *recordingBuffer) Pending() int { return b.pending }

func (b *recordingBuffer) BufferWrite(ctx context.Context, table, operation, rowID string, payload interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.writes = append(b.writes, bufferedWrite{table, operation, rowID, payload})
	return nil
}

type recordingFeed struct {
	events []domain.ChangeEvent
}

func (f *recordingFeed) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *recordingFeed) Subscribe(ctx context.Context) (<-chan domain.ChangeEvent, func() error, error) {
	ch := make(chan domain.ChangeEvent)
	return ch, func() error { return nil }, nil
}

type fixture struct {
	uc        *UseCase
	members   *memberRepo
	games     *gameRepo
	faqs      *faqRepo
	resources *resourceRepo
	buffer    *recordingBuffer
	feed      *recordingFeed
}

func newFixture() *fixture {
	f := &fixture{
		members:   newMemberRepo(),
		games:     &gameRepo{},
		faqs:      &faqRepo{},
		resources: &resourceRepo{},
		buffer:    &recordingBuffer{},
		feed:      &recordingFeed{},
	}
	f.uc = New(Repositories{
		Members:   f.members,
		Games:     f.games,
		FAQs:      f.faqs,
		Resources: f.resources,
	}, f.buffer, f.feed, nil)
	return f
}
