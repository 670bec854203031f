package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/observability"
	"github.com/noah-isme/edudocs-api/internal/repository"
)

const sessionBufferSize = 8

var (
	// ErrNotLoggedIn indicates the operation needs a current user.
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrEmptyQuery indicates a blank assistant question.
	ErrEmptyQuery = errors.New("query must not be empty")
)

// SessionState is the published view of the current session.
type SessionState struct {
	CurrentUser *models.User      `json:"current_user"`
	Users       []models.User     `json:"users"`
	Documents   []models.Document `json:"documents"`
	Loading     bool              `json:"loading"`
}

func (s SessionState) clone() SessionState {
	cloned := SessionState{Loading: s.Loading}
	if s.CurrentUser != nil {
		user := *s.CurrentUser
		cloned.CurrentUser = &user
	}
	cloned.Users = make([]models.User, len(s.Users))
	copy(cloned.Users, s.Users)
	cloned.Documents = make([]models.Document, len(s.Documents))
	copy(cloned.Documents, s.Documents)
	return cloned
}

// SyncMode selects how cached collections follow a successful write.
type SyncMode int

const (
	// SyncRefresh re-fetches users and documents after every write.
	SyncRefresh SyncMode = iota
	// SyncIncremental merges the entity returned by the write into the cache.
	SyncIncremental
)

// SessionCoordinator keeps one process wide session consistent with the
// repository and broadcasts every state change to subscribers.
type SessionCoordinator interface {
	State() SessionState
	Subscribe() (<-chan SessionState, func())
	Refresh(ctx context.Context) error
	Login(ctx context.Context, userID string) (models.User, bool, error)
	Logout()
	Register(ctx context.Context, name string, role models.Role) (models.User, error)
	SubmitDocument(ctx context.Context, doc models.NewDocument, blob *models.FileBlob) (models.Document, error)
	ReviewDocument(ctx context.Context, docID string, status models.DocumentStatus) (models.Document, bool, error)
	CurrentUser() (models.User, bool)
	VisibleDocuments() []models.Document
	Ask(ctx context.Context, query string) (string, error)
	Conversation() []models.ChatMessage
}

type sessionCoordinator struct {
	repo      repository.Repository
	assistant AssistantService
	syncMode  SyncMode
	logger    zerolog.Logger

	mu           sync.RWMutex
	state        SessionState
	conversation *Conversation

	subMu       sync.RWMutex
	subscribers map[chan SessionState]struct{}
}

// NewSessionCoordinator builds a logged out session with empty caches; call
// Refresh to load them.
func NewSessionCoordinator(repo repository.Repository, assistant AssistantService, mode SyncMode, logger zerolog.Logger) SessionCoordinator {
	return &sessionCoordinator{
		repo:        repo,
		assistant:   assistant,
		syncMode:    mode,
		logger:      logger.With().Str("component", "session_coordinator").Logger(),
		state:       SessionState{Users: []models.User{}, Documents: []models.Document{}},
		subscribers: make(map[chan SessionState]struct{}),
	}
}

func (s *sessionCoordinator) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *sessionCoordinator) Subscribe() (<-chan SessionState, func()) {
	channel := make(chan SessionState, sessionBufferSize)

	s.subMu.Lock()
	s.subscribers[channel] = struct{}{}
	s.subMu.Unlock()
	observability.SessionSubscribers().Inc()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, channel)
			close(channel)
			s.subMu.Unlock()
			observability.SessionSubscribers().Dec()
		})
	}

	return channel, cancel
}

// update applies fn under the state lock and broadcasts the result. fn may
// also touch other fields guarded by mu.
func (s *sessionCoordinator) update(fn func(state *SessionState)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.broadcast(snapshot)
}

func (s *sessionCoordinator) broadcast(snapshot SessionState) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- snapshot.clone():
		default:
			s.logger.Debug().Msg("dropping session snapshot for slow subscriber")
		}
	}
}

func (s *sessionCoordinator) Refresh(ctx context.Context) error {
	s.update(func(state *SessionState) { state.Loading = true })

	var (
		users     []models.User
		documents []models.Document
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		users, err = s.repo.ListUsers(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		documents, err = s.repo.ListDocuments(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to refresh session data")
		s.update(func(state *SessionState) { state.Loading = false })
		return err
	}

	s.update(func(state *SessionState) {
		state.Users = users
		state.Documents = documents
		state.Loading = false
	})
	return nil
}

func (s *sessionCoordinator) Login(ctx context.Context, userID string) (models.User, bool, error) {
	userID = strings.TrimSpace(userID)

	user, found := s.cachedUser(userID)
	if !found {
		// A user registered moments ago may not be cached yet.
		users, err := s.repo.ListUsers(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to reload users for login")
			return models.User{}, false, err
		}
		s.update(func(state *SessionState) { state.Users = users })
		user, found = s.cachedUser(userID)
	}

	if !found {
		s.logger.Info().Str("user_id", userID).Msg("login rejected, unknown user")
		return models.User{}, false, nil
	}

	// The transcript belongs to the current user, so both change together.
	s.update(func(state *SessionState) {
		current := user
		state.CurrentUser = &current
		s.conversation = NewConversation(user)
	})
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, true, nil
}

func (s *sessionCoordinator) cachedUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.state.Users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

func (s *sessionCoordinator) Logout() {
	s.update(func(state *SessionState) {
		state.CurrentUser = nil
		s.conversation = nil
	})
}

func (s *sessionCoordinator) Register(ctx context.Context, name string, role models.Role) (models.User, error) {
	user, err := s.repo.CreateUser(ctx, name, role)
	if err != nil {
		return models.User{}, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")

	s.afterWrite(ctx, func(state *SessionState) { mergeUser(state, user) })

	if _, _, err := s.Login(ctx, user.ID); err != nil {
		return user, err
	}
	return user, nil
}

func (s *sessionCoordinator) SubmitDocument(ctx context.Context, input models.NewDocument, blob *models.FileBlob) (models.Document, error) {
	doc, err := s.repo.CreateDocument(ctx, input, blob)
	if err != nil {
		return models.Document{}, err
	}
	s.logger.Info().Str("document_id", doc.ID).Str("student_id", doc.StudentID).Msg("document submitted")

	s.afterWrite(ctx, func(state *SessionState) { mergeDocument(state, doc) })
	return doc, nil
}

func (s *sessionCoordinator) ReviewDocument(ctx context.Context, docID string, status models.DocumentStatus) (models.Document, bool, error) {
	doc, found, err := s.repo.UpdateDocumentStatus(ctx, strings.TrimSpace(docID), status)
	if err != nil {
		return models.Document{}, false, err
	}
	if !found {
		return models.Document{}, false, nil
	}
	s.logger.Info().Str("document_id", doc.ID).Str("status", string(doc.Status)).Msg("document reviewed")

	s.afterWrite(ctx, func(state *SessionState) { mergeDocument(state, doc) })
	return doc, true, nil
}

// afterWrite brings the cache in line with the repository once a write
// succeeded. A failed refresh is logged by Refresh and leaves the old cache.
func (s *sessionCoordinator) afterWrite(ctx context.Context, merge func(state *SessionState)) {
	if s.syncMode == SyncIncremental {
		s.update(merge)
		return
	}
	_ = s.Refresh(ctx)
}

func mergeUser(state *SessionState, user models.User) {
	for _, existing := range state.Users {
		if existing.ID == user.ID {
			return
		}
	}
	state.Users = append(state.Users, user)
}

func mergeDocument(state *SessionState, doc models.Document) {
	for i := range state.Documents {
		if state.Documents[i].ID == doc.ID {
			state.Documents[i] = doc
			return
		}
	}
	state.Documents = append([]models.Document{doc}, state.Documents...)
	sort.SliceStable(state.Documents, func(i, j int) bool {
		return state.Documents[i].SubmittedAt.After(state.Documents[j].SubmittedAt)
	})
}

func (s *sessionCoordinator) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return models.User{}, false
	}
	return *s.state.CurrentUser, true
}

func (s *sessionCoordinator) VisibleDocuments() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return []models.Document{}
	}
	return models.VisibleTo(*s.state.CurrentUser, s.state.Documents)
}

func (s *sessionCoordinator) Ask(ctx context.Context, query string) (string, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return "", ErrNotLoggedIn
	}

	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	reply := s.assistant.Answer(ctx, query, user, s.VisibleDocuments())

	s.mu.RLock()
	conversation := s.conversation
	s.mu.RUnlock()
	if conversation != nil {
		conversation.Record(query, reply)
	}
	return reply, nil
}

func (s *sessionCoordinator) Conversation() []models.ChatMessage {
	s.mu.RLock()
	conversation := s.conversation
	s.mu.RUnlock()

	if conversation == nil {
		return []models.ChatMessage{}
	}
	return conversation.Messages()
}
