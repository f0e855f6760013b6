package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
)

// EntityStore abstracts the persisted board state (store.Store).
type EntityStore interface {
	User() (domain.User, bool)
	Users() []domain.User
	Questions() []domain.Question
	Answers() []domain.Answer
	SetUser(ctx context.Context, u domain.User) error
	SetQuestions(ctx context.Context, questions []domain.Question) error
	SetAnswers(ctx context.Context, answers []domain.Answer) error
}

// BoardService runs every mutation under one lock: read the latest state,
// compute the new value, persist it, then return.
type BoardService struct {
	mu    sync.Mutex
	store EntityStore
	newID ports.IDGenerator
	now   ports.Clock
	log   zerolog.Logger
}

func NewBoardService(store EntityStore, newID ports.IDGenerator, now ports.Clock, log zerolog.Logger) *BoardService {
	if now == nil {
		now = time.Now
	}
	return &BoardService{
		store: store,
		newID: newID,
		now:   now,
		log:   log,
	}
}

var _ ports.BoardService = (*BoardService)(nil)

func (s *BoardService) CurrentUser(_ context.Context) (domain.User, error) {
	u, ok := s.store.User()
	if !ok {
		return domain.User{}, domain.ErrNoCurrentUser
	}
	return u, nil
}

func (s *BoardService) Users(_ context.Context) ([]domain.User, error) {
	return s.store.Users(), nil
}

// RenameUser sets the current user's display name.
func (s *BoardService) RenameUser(ctx context.Context, name string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.store.User()
	if !ok {
		return domain.User{}, domain.ErrNoCurrentUser
	}
	renamed, err := u.Rename(name)
	if err != nil {
		return u, err
	}
	if err := s.store.SetUser(ctx, renamed); err != nil {
		return u, err
	}
	s.log.Info().Str("user_id", renamed.ID).Str("name", renamed.Name).Msg("user renamed")
	return renamed, nil
}

// AbandonProfile rotates to a brand-new anonymous identity. The old one
// stays in the users list and keeps authorship of its content.
func (s *BoardService) AbandonProfile(ctx context.Context) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.store.User()
	next := domain.NewUser(s.newID())
	if err := s.store.SetUser(ctx, next); err != nil {
		return prev, err
	}
	s.log.Info().Str("old_user_id", prev.ID).Str("user_id", next.ID).Msg("profile abandoned")
	return next, nil
}
