package message_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres/message"
	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

func TestRepo_CreateAndGetByID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)
	ctx := context.Background()

	chat := testhelper.SeedChat(t, pool, domain.LanguageEnglish)

	created, err := repo.Create(ctx, &domain.Message{
		ChatID: chat.ID,
		Role:   domain.MessageRoleUser,
		Parts:  []domain.MessagePart{{Type: domain.PartTypeText, Text: "I goes home."}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, got.ChatID)
	assert.Equal(t, domain.MessageRoleUser, got.Role)
	assert.Equal(t, "I goes home.", got.Text())
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestRepo_Create_UnknownChat(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)

	_, err := repo.Create(context.Background(), &domain.Message{
		ChatID: uuid.New(),
		Role:   domain.MessageRoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Create_InvalidRole(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)
	chat := testhelper.SeedChat(t, pool, domain.LanguageEnglish)

	_, err := repo.Create(context.Background(), &domain.Message{
		ChatID: chat.ID,
		Role:   domain.MessageRole("narrator"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateParts(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)
	ctx := context.Background()

	chat := testhelper.SeedChat(t, pool, domain.LanguageFrench)
	msg := testhelper.SeedMessage(t, pool, chat.ID, "Je suis allé.")

	part, err := domain.NewFeedbackPart(domain.FeedbackResult{
		Original:     "Je suis allé.",
		Corrections:  []domain.Correction{},
		OverallScore: 100,
		Summary:      "Great job!",
	})
	require.NoError(t, err)

	parts := append(msg.Parts, part)
	require.NoError(t, repo.UpdateParts(ctx, msg.ID, parts))

	got, err := repo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Len(t, got.Parts, 2)
	assert.Equal(t, domain.PartTypeText, got.Parts[0].Type)
	assert.Equal(t, domain.PartTypeLanguageFeedback, got.Parts[1].Type)

	feedback, err := got.FeedbackParts()
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, 100, feedback[0].OverallScore)
	assert.Equal(t, "Great job!", feedback[0].Summary)
}

func TestRepo_UpdateParts_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)

	err := repo.UpdateParts(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ListByChat(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)

	chat := testhelper.SeedChat(t, pool, domain.LanguageSpanish)
	first := testhelper.SeedMessage(t, pool, chat.ID, "Hola.")
	second := testhelper.SeedMessage(t, pool, chat.ID, "Yo tengo hambre.")

	got, err := repo.ListByChat(context.Background(), chat.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []uuid.UUID{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
}

func TestRepo_ConcurrentAppendsInTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := message.New(pool)
	tm := postgres.NewTxManager(pool)

	chat := testhelper.SeedChat(t, pool, domain.LanguageEnglish)
	msg := testhelper.SeedMessage(t, pool, chat.ID, "She don't like it.")

	const writers = 5
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = tm.RunInTx(context.Background(), func(ctx context.Context) error {
				m, err := repo.GetByID(ctx, msg.ID)
				if err != nil {
					return err
				}
				part := domain.MessagePart{Type: domain.PartTypeLanguageFeedback, Data: []byte(`{}`)}
				return repo.UpdateParts(ctx, msg.ID, append(m.Parts, part))
			})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Len(t, got.Parts, 1+writers)
}
