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

type MemberInput struct {
	Name         string
	Image        string
	Role         string
	JoinDate     string
	Achievements []string
	// AchievementsText is the newline separated form used by the admin form.
	AchievementsText string
}

// ParseAchievements splits one achievement per line, dropping blank lines.
func ParseAchievements(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (in MemberInput) achievements() []string {
	if len(in.Achievements) > 0 {
		out := make([]string, 0, len(in.Achievements))
		for _, a := range in.Achievements {
			if a = strings.TrimSpace(a); a != "" {
				out = append(out, a)
			}
		}
		return out
	}
	return ParseAchievements(in.AchievementsText)
}

func (in MemberInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "is required")
	}
	return nil
}

func (uc *UseCase) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return uc.repos.Members.List(ctx, repository.ListFilter{})
}

func (uc *UseCase) CreateMember(ctx context.Context, in MemberInput) (*domain.Member, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	member := &domain.Member{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Image:        in.Image,
		Role:         in.Role,
		JoinDate:     in.JoinDate,
		Achievements: in.achievements(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.write(ctx, domain.TableMembers, usecase.OperationCreate, member.ID, member, func() error {
		created, err := uc.repos.Members.Create(ctx, member)
		if err == nil && created != nil {
			member = created
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (uc *UseCase) UpdateMember(ctx context.Context, id string, in MemberInput) (*domain.Member, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	member := &domain.Member{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		Image:        in.Image,
		Role:         in.Role,
		JoinDate:     in.JoinDate,
		Achievements: in.achievements(),
		UpdatedAt:    time.Now().UTC(),
	}

	err := uc.write(ctx, domain.TableMembers, usecase.OperationUpdate, id, member, func() error {
		return uc.repos.Members.Update(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (uc *UseCase) DeleteMember(ctx context.Context, id string) error {
	return uc.write(ctx, domain.TableMembers, usecase.OperationDelete, id, rowRef{ID: id}, func() error {
		return uc.repos.Members.Delete(ctx, id)
	})
}
