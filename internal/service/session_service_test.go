package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/repository"
	"github.com/noah-isme/edudocs-api/internal/storage"
)

type failingListRepository struct {
	repository.Repository
	fail bool
}

func (r *failingListRepository) ListDocuments(ctx context.Context) ([]models.Document, error) {
	if r.fail {
		return nil, errors.New("store offline")
	}
	return r.Repository.ListDocuments(ctx)
}

func newSeededRepository() *repository.MemoryRepository {
	repo := repository.NewMemoryRepository(storage.NewBlobRegistry(), nil, repository.WithLatency(repository.Latency{}))
	repo.Seed()
	return repo
}

func newCoordinator(t *testing.T, repo repository.Repository, mode SyncMode) SessionCoordinator {
	t.Helper()
	session := NewSessionCoordinator(repo, NewAssistantService(nil, zerolog.Nop()), mode, zerolog.Nop())
	require.NoError(t, session.Refresh(context.Background()))
	return session
}

func uploadBlob() *models.FileBlob {
	return &models.FileBlob{Name: "recommendation.pdf", Data: []byte("%PDF-1.4")}
}

func TestRefreshLoadsCollections(t *testing.T) {
	session := NewSessionCoordinator(newSeededRepository(), NewAssistantService(nil, zerolog.Nop()), SyncRefresh, zerolog.Nop())

	state := session.State()
	require.Empty(t, state.Users)
	require.False(t, state.Loading)

	require.NoError(t, session.Refresh(context.Background()))

	state = session.State()
	require.Len(t, state.Users, 3)
	require.Len(t, state.Documents, 3)
	require.False(t, state.Loading)
	require.Nil(t, state.CurrentUser)
}

func TestRefreshFailureKeepsPreviousCollections(t *testing.T) {
	repo := &failingListRepository{Repository: newSeededRepository()}
	session := newCoordinator(t, repo, SyncRefresh)

	repo.fail = true
	err := session.Refresh(context.Background())
	require.Error(t, err)

	state := session.State()
	require.Len(t, state.Documents, 3)
	require.Len(t, state.Users, 3)
	require.False(t, state.Loading)
}

func TestLoginAndLogout(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)
	ctx := context.Background()

	_, ok, err := session.Login(ctx, "user-404")
	require.NoError(t, err)
	require.False(t, ok)
	_, loggedIn := session.CurrentUser()
	require.False(t, loggedIn)

	user, ok, err := session.Login(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Alice Ivanova", user.Name)

	conversation := session.Conversation()
	require.Len(t, conversation, 1)
	require.Equal(t, "Hello, Alice Ivanova! How can I help you today?", conversation[0].Text)

	session.Logout()
	_, loggedIn = session.CurrentUser()
	require.False(t, loggedIn)
	require.Empty(t, session.VisibleDocuments())
	require.Empty(t, session.Conversation())
}

func TestLoginReloadsUsersOnCacheMiss(t *testing.T) {
	repo := newSeededRepository()
	session := newCoordinator(t, repo, SyncRefresh)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "Galina Orlova", models.RoleStudent)
	require.NoError(t, err)

	user, ok, err := session.Login(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created, user)
	require.Len(t, session.State().Users, 4)
}

func TestRegisterCreatesRefreshesAndLogsIn(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)

	user, err := session.Register(context.Background(), "  Dmitri <Dima> Volkov ", models.RoleTeacher)
	require.NoError(t, err)
	require.Equal(t, "Dmitri <Dima> Volkov", user.Name)

	current, ok := session.CurrentUser()
	require.True(t, ok)
	require.Equal(t, user.ID, current.ID)
	require.Len(t, session.State().Users, 4)
	require.Len(t, session.VisibleDocuments(), 3)
}

func TestRegisterValidationFailureSkipsLogin(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)

	_, err := session.Register(context.Background(), "", models.RoleStudent)
	require.ErrorIs(t, err, repository.ErrValidation)

	_, ok := session.CurrentUser()
	require.False(t, ok)
	require.Len(t, session.State().Users, 3)
}

func TestVisibilityFollowsRole(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)
	ctx := context.Background()

	_, ok, err := session.Login(ctx, "user-3")
	require.NoError(t, err)
	require.True(t, ok)
	teacherView := session.VisibleDocuments()
	require.Len(t, teacherView, 3)

	_, ok, err = session.Login(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, ok)
	studentView := session.VisibleDocuments()
	require.Len(t, studentView, 1)
	require.Equal(t, "doc-2", studentView[0].ID)
	require.Less(t, len(studentView), len(teacherView))
}

func TestSubmitAndReviewInBothSyncModes(t *testing.T) {
	for name, mode := range map[string]SyncMode{"refresh": SyncRefresh, "incremental": SyncIncremental} {
		t.Run(name, func(t *testing.T) {
			session := newCoordinator(t, newSeededRepository(), mode)
			ctx := context.Background()

			doc, err := session.SubmitDocument(ctx, models.NewDocument{
				StudentID:    "user-2",
				Description:  "Recommendation for <exchange> programme & grant",
				DocumentType: models.DocumentTypeRecommendation,
			}, uploadBlob())
			require.NoError(t, err)
			require.Equal(t, "Recommendation for <exchange> programme & grant", doc.Description)
			require.Equal(t, "Boris Petrov", doc.StudentName)

			state := session.State()
			require.Len(t, state.Documents, 4)
			require.Equal(t, doc.ID, state.Documents[0].ID)

			reviewed, found, err := session.ReviewDocument(ctx, doc.ID, models.DocumentStatusChecked)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, models.DocumentStatusChecked, reviewed.Status)

			state = session.State()
			require.Len(t, state.Documents, 4)
			require.Equal(t, models.DocumentStatusChecked, state.Documents[0].Status)

			_, found, err = session.ReviewDocument(ctx, "doc-404", models.DocumentStatusSigned)
			require.NoError(t, err)
			require.False(t, found)
		})
	}
}

func TestSubmitValidationErrorLeavesCacheUntouched(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)

	_, err := session.SubmitDocument(context.Background(), models.NewDocument{
		StudentID:    "user-1",
		Description:  "no file attached",
		DocumentType: models.DocumentTypeLeave,
	}, nil)
	require.ErrorIs(t, err, repository.ErrValidation)
	require.Len(t, session.State().Documents, 3)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)
	updates, cancel := session.Subscribe()

	_, ok, err := session.Login(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	select {
	case snapshot := <-updates:
		require.NotNil(t, snapshot.CurrentUser)
		require.Equal(t, "user-1", snapshot.CurrentUser.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a session snapshot")
	}

	cancel()
	cancel()

	_, open := <-updates
	require.False(t, open)
}

func TestAskRecordsConversation(t *testing.T) {
	repo := newSeededRepository()
	generator := &recordingGenerator{reply: "Your thesis topic has been checked."}
	session := NewSessionCoordinator(repo, NewAssistantService(generator, zerolog.Nop()), SyncRefresh, zerolog.Nop())
	require.NoError(t, session.Refresh(context.Background()))
	ctx := context.Background()

	_, err := session.Ask(ctx, "hello")
	require.ErrorIs(t, err, ErrNotLoggedIn)

	_, ok, err := session.Login(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = session.Ask(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyQuery)

	reply, err := session.Ask(ctx, "What about my <thesis>?")
	require.NoError(t, err)
	require.Equal(t, "Your thesis topic has been checked.", reply)

	require.Len(t, generator.prompts, 1)
	require.Contains(t, generator.prompts[0], "thesis-topic-v2.docx")
	require.Contains(t, generator.prompts[0], `"What about my <thesis>?"`)
	require.NotContains(t, generator.prompts[0], "transcript-request.pdf")

	messages := session.Conversation()
	require.Len(t, messages, 3)
	require.Equal(t, "What about my <thesis>?", messages[1].Text)
	require.Equal(t, reply, messages[2].Text)
}

func TestConcurrentLoginsKeepTranscriptWithCurrentUser(t *testing.T) {
	session := newCoordinator(t, newSeededRepository(), SyncRefresh)
	ctx := context.Background()

	for round := 0; round < 100; round++ {
		var wg sync.WaitGroup
		for _, id := range []string{"user-1", "user-2", "user-3"} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, _, err := session.Login(ctx, id)
				assert.NoError(t, err)
			}(id)
		}
		wg.Wait()

		current, ok := session.CurrentUser()
		require.True(t, ok)
		transcript := session.Conversation()
		require.Len(t, transcript, 1)
		require.Equal(t, fmt.Sprintf("Hello, %s! How can I help you today?", current.Name), transcript[0].Text)
	}
}
