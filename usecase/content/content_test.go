package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/usecase"
)

func TestParseAchievementsDropsBlankLines(t *testing.T) {
	got := ParseAchievements("  Winner Spring Cup \n\n\nTop 8 Regionals\r\n  ")
	assert.Equal(t, []string{"Winner Spring Cup", "Top 8 Regionals"}, got)
	assert.Empty(t, ParseAchievements(""))
}

func TestCreateMemberPublishesInsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	member, err := f.uc.CreateMember(ctx, MemberInput{Name: " Ash ", AchievementsText: "a\nb"})
	require.NoError(t, err)
	assert.Equal(t, "Ash", member.Name)
	assert.Equal(t, []string{"a", "b"}, member.Achievements)
	assert.NotEmpty(t, member.ID)

	require.Len(t, f.feed.events, 1)
	assert.Equal(t, domain.TableMembers, f.feed.events[0].Table)
	assert.Equal(t, domain.ChangeInsert, f.feed.events[0].Operation)
	assert.Equal(t, member.ID, f.feed.events[0].RowID)
	assert.Empty(t, f.buffer.writes)
}

func TestCreateMemberRequiresName(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateMember(context.Background(), MemberInput{Name: "  "})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, f.members.rows)
}

func TestWriteIsBufferedWhenDatabaseFails(t *testing.T) {
	f := newFixture()
	f.members.err = errDown

	member, err := f.uc.CreateMember(context.Background(), MemberInput{Name: "Misty"})
	require.NoError(t, err)
	require.Len(t, f.buffer.writes, 1)
	assert.Equal(t, domain.TableMembers, f.buffer.writes[0].table)
	assert.Equal(t, usecase.OperationCreate, f.buffer.writes[0].operation)
	assert.Equal(t, member.ID, f.buffer.writes[0].rowID)
	assert.Empty(t, f.feed.events, "buffered writes are published on replay")
}

func TestWriteFailsWhenBufferRejects(t *testing.T) {
	f := newFixture()
	f.members.err = errDown
	f.buffer.err = errDown

	_, err := f.uc.CreateMember(context.Background(), MemberInput{Name: "Brock"})
	assert.ErrorIs(t, err, errDown)
}

func TestDeleteMissingRowIsNotBuffered(t *testing.T) {
	f := newFixture()
	err := f.uc.DeleteMember(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	assert.Empty(t, f.buffer.writes)
	assert.Empty(t, f.feed.events)
}

func TestCreateGameValidatesReplayURL(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateGame(ctx, GameInput{Tournament: "Worlds", Players: "A vs B", ReplayURL: "not a url"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	game, err := f.uc.CreateGame(ctx, GameInput{
		Tournament: "Worlds",
		Players:    "A vs B",
		ReplayURL:  "https://replay.example.com/battle-1",
	})
	require.NoError(t, err)
	assert.Len(t, f.games.rows, 1)
	assert.Equal(t, game.ID, f.games.rows[0].ID)
}

func TestCreateFAQRequiresAllFields(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateFAQ(context.Background(), FAQInput{QuestionIT: "Chi?", QuestionEN: "Who?", AnswerIT: "Noi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer_en")
}

func TestCreateFAQAppendsAfterLastPosition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := FAQInput{QuestionIT: "q", QuestionEN: "q", AnswerIT: "a", AnswerEN: "a"}

	first, err := f.uc.CreateFAQ(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.True(t, first.IsActive)

	f.faqs.rows[0].Position = 7
	second, err := f.uc.CreateFAQ(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 8, second.Position)
}

func TestToggleFAQFlipsVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	faq, err := f.uc.CreateFAQ(ctx, FAQInput{QuestionIT: "q", QuestionEN: "q", AnswerIT: "a", AnswerEN: "a"})
	require.NoError(t, err)

	toggled, err := f.uc.ToggleFAQ(ctx, faq.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.False(t, f.faqs.rows[0].IsActive)

	toggled, err = f.uc.ToggleFAQ(ctx, faq.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	last := f.feed.events[len(f.feed.events)-1]
	assert.Equal(t, domain.ChangeUpdate, last.Operation)
}

func TestToggleFAQBuffersDesiredState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	faq, err := f.uc.CreateFAQ(ctx, FAQInput{QuestionIT: "q", QuestionEN: "q", AnswerIT: "a", AnswerEN: "a"})
	require.NoError(t, err)

	f.faqs.err = errDown
	_, err = f.uc.ToggleFAQ(ctx, faq.ID)
	require.NoError(t, err)
	require.Len(t, f.buffer.writes, 1)
	assert.Equal(t, activeRef{ID: faq.ID, Active: false}, f.buffer.writes[0].payload)
}

func TestCreateFAQIsPlacedOnReplayWhenDatabaseFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.faqs.rows = []domain.FAQ{{ID: "old", Position: 4, IsActive: true}}
	f.faqs.maxErr = errDown

	faq, err := f.uc.CreateFAQ(ctx, FAQInput{QuestionIT: "q", QuestionEN: "q", AnswerIT: "a", AnswerEN: "a"})
	require.NoError(t, err)
	require.Len(t, f.buffer.writes, 1)
	assert.Equal(t, unplaced, faq.Position)
	assert.Len(t, f.faqs.rows, 1)

	f.faqs.maxErr = nil
	d := usecase.NewDispatcher()
	f.uc.RegisterReplays(d)
	payload, err := json.Marshal(f.buffer.writes[0].payload)
	require.NoError(t, err)
	require.NoError(t, d.ExecuteCommand(ctx, "faqs.create", payload))

	require.Len(t, f.faqs.rows, 2)
	assert.Equal(t, faq.ID, f.faqs.rows[1].ID)
	assert.Equal(t, 5, f.faqs.rows[1].Position)
}

func TestWriteQueuesBehindPendingBuffer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	member, err := f.uc.CreateMember(ctx, MemberInput{Name: "Ash"})
	require.NoError(t, err)

	f.buffer.pending = 1
	require.NoError(t, f.uc.DeleteMember(ctx, member.ID))

	assert.Contains(t, f.members.rows, member.ID, "delete waits for the queued writes")
	require.Len(t, f.buffer.writes, 1)
	assert.Equal(t, usecase.OperationDelete, f.buffer.writes[0].operation)
	assert.Equal(t, rowRef{ID: member.ID}, f.buffer.writes[0].payload)
}

func TestCreateResourceValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateResource(ctx, ResourceInput{TitleIT: "Regole", TitleEN: "Rules"})
	assert.Contains(t, err.Error(), "url")

	_, err = f.uc.CreateResource(ctx, ResourceInput{TitleIT: "x", TitleEN: "x", URL: "https://x", Category: "blog"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	res, err := f.uc.CreateResource(ctx, ResourceInput{TitleIT: "Regole", TitleEN: "Rules", URL: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, "links", res.Category)
	assert.Equal(t, 0, res.Position)
}

func TestPublicFAQsHidesInactiveAndLocalizes(t *testing.T) {
	f := newFixture()
	f.faqs.rows = []domain.FAQ{
		{ID: "2", QuestionIT: "Quando?", QuestionEN: "When?", AnswerIT: "Ora", AnswerEN: "", Position: 1, IsActive: true},
		{ID: "1", QuestionIT: "Chi?", QuestionEN: "Who?", AnswerIT: "Noi", AnswerEN: "Us", Position: 0, IsActive: true},
		{ID: "3", QuestionIT: "Nascosta", QuestionEN: "Hidden", Position: 2, IsActive: false},
	}

	en, err := f.uc.PublicFAQs(context.Background(), domain.LocaleEN)
	require.NoError(t, err)
	require.Len(t, en, 2)
	assert.Equal(t, "Who?", en[0].Question)
	assert.Equal(t, "Us", en[0].Answer)
	assert.Equal(t, "Ora", en[1].Answer, "missing english falls back to italian")

	it, err := f.uc.PublicFAQs(context.Background(), domain.LocaleIT)
	require.NoError(t, err)
	assert.Equal(t, "Chi?", it[0].Question)
}

func TestPublicResourcesGroupedByCategory(t *testing.T) {
	f := newFixture()
	f.resources.rows = []domain.FooterResource{
		{ID: "1", TitleIT: "Discord", TitleEN: "Discord", URL: "https://d", Category: "social", IsActive: true},
		{ID: "2", TitleIT: "Privacy", TitleEN: "Privacy policy", URL: "https://p", Category: "legal", IsActive: true},
		{ID: "3", TitleIT: "Vecchio", TitleEN: "Old", URL: "https://o", Category: "links", IsActive: false},
	}

	got, err := f.uc.PublicResources(context.Background(), domain.LocaleEN)
	require.NoError(t, err)
	assert.Len(t, got["social"], 1)
	assert.Equal(t, "Privacy policy", got["legal"][0].Title)
	assert.Empty(t, got["links"])
	assert.Contains(t, got, "support")
}

func TestRegisterReplaysAppliesBufferedWrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := usecase.NewDispatcher()
	f.uc.RegisterReplays(d)

	assert.Contains(t, d.Commands(), "members.create")
	assert.Contains(t, d.Commands(), "faqs.set_active")
	assert.Contains(t, d.Commands(), "footer_resources.delete")

	payload, err := json.Marshal(domain.Member{ID: "m1", Name: "Ash"})
	require.NoError(t, err)
	require.NoError(t, d.ExecuteCommand(ctx, usecase.ReplayCommand(domain.TableMembers, usecase.OperationCreate), payload))
	assert.Equal(t, "Ash", f.members.rows["m1"].Name)
	require.Len(t, f.feed.events, 1)
	assert.Equal(t, "m1", f.feed.events[0].RowID)

	// deleting an already missing row is treated as replayed
	require.NoError(t, d.ExecuteCommand(ctx, "faqs.delete", []byte(`{"id":"gone"}`)))
}

func TestReplaySetActive(t *testing.T) {
	f := newFixture()
	f.faqs.rows = []domain.FAQ{{ID: "f1", IsActive: true}}
	d := usecase.NewDispatcher()
	f.uc.RegisterReplays(d)

	require.NoError(t, d.ExecuteCommand(context.Background(), "faqs.set_active", []byte(`{"id":"f1","active":false}`)))
	assert.False(t, f.faqs.rows[0].IsActive)
}
