// Package store keeps the in-memory copy of the board and mirrors every
// change into a ports.KVStore under four independent keys.
//
// A setter persists first and only then swaps the in-memory value, so a
// failed write leaves memory exactly as it was.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
)

// Keys of the persisted documents.
const (
	KeyUser      = "user"
	KeyUsers     = "users"
	KeyQuestions = "questions"
	KeyAnswers   = "answers"
)

type Store struct {
	kv    ports.KVStore
	newID ports.IDGenerator
	now   ports.Clock
	log   zerolog.Logger

	mu        sync.RWMutex
	user      *domain.User
	users     []domain.User
	questions []domain.Question
	answers   []domain.Answer

	lmu       sync.RWMutex
	listeners []func(ports.Change)
}

// New returns an empty Store. Call Load before use.
func New(kv ports.KVStore, newID ports.IDGenerator, now ports.Clock, log zerolog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:        kv,
		newID:     newID,
		now:       now,
		log:       log,
		users:     []domain.User{},
		questions: []domain.Question{},
		answers:   []domain.Answer{},
	}
}

// OnChange registers fn to be called after every successful write.
func (s *Store) OnChange(fn func(ports.Change)) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// User returns the current user. ok is false before Load.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return s.user.Clone(), true
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Store) Questions() []domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Question(nil), s.questions...)
}

func (s *Store) Answers() []domain.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Answer(nil), s.answers...)
}

// SetUser makes u the current user and upserts it into the users list.
// Both documents are written; if the list write fails the previous user
// document is restored.
func (s *Store) SetUser(ctx context.Context, u domain.User) error {
	s.mu.RLock()
	prev := s.user
	users := domain.UpsertUser(s.users, u)
	s.mu.RUnlock()

	if err := s.write(ctx, KeyUser, u); err != nil {
		return err
	}
	if err := s.write(ctx, KeyUsers, users); err != nil {
		if prev != nil {
			if rerr := s.write(ctx, KeyUser, *prev); rerr != nil {
				s.log.Error().Err(rerr).Str("user_id", prev.ID).Msg("failed to restore user after list write failure")
			}
		}
		return err
	}

	cur := u.Clone()
	s.mu.Lock()
	s.user = &cur
	s.users = users
	s.mu.Unlock()

	s.notify(KeyUser, KeyUsers)
	return nil
}

func (s *Store) SetUsers(ctx context.Context, users []domain.User) error {
	users = nonNil(users)
	if err := s.write(ctx, KeyUsers, users); err != nil {
		return err
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	s.notify(KeyUsers)
	return nil
}

func (s *Store) SetQuestions(ctx context.Context, questions []domain.Question) error {
	questions = nonNil(questions)
	if err := s.write(ctx, KeyQuestions, questions); err != nil {
		return err
	}
	s.mu.Lock()
	s.questions = questions
	s.mu.Unlock()
	s.notify(KeyQuestions)
	return nil
}

func (s *Store) SetAnswers(ctx context.Context, answers []domain.Answer) error {
	answers = nonNil(answers)
	if err := s.write(ctx, KeyAnswers, answers); err != nil {
		return err
	}
	s.mu.Lock()
	s.answers = answers
	s.mu.Unlock()
	s.notify(KeyAnswers)
	return nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, b); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("store write failed")
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

// read decodes the document under key into v. found is false for an absent
// key or a stored JSON null.
func (s *Store) read(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %q: %w", key, err)
	}
	if len(b) == 0 || string(b) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("store: decode %q: %w: %v", key, domain.ErrCorruptRecord, err)
	}
	return true, nil
}

func (s *Store) notify(keys ...string) {
	s.lmu.RLock()
	listeners := s.listeners
	s.lmu.RUnlock()
	if len(listeners) == 0 {
		return
	}

	at := s.now()
	for _, k := range keys {
		for _, fn := range listeners {
			fn(ports.Change{Key: k, At: at})
		}
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
