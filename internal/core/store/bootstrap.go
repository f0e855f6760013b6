package store

import (
	"context"
	"reflect"

	"github.com/askanything/board/internal/core/domain"
)

// Load reads all four documents. When no current user is stored a fresh
// anonymous identity is generated and the users list is reset to it.
// Running Load again against the same backend never creates a second id.
func (s *Store) Load(ctx context.Context) error {
	var user domain.User
	found, err := s.read(ctx, KeyUser, &user)
	if err != nil {
		return err
	}

	var users []domain.User
	if !found {
		user = domain.NewUser(s.newID())
		users = []domain.User{user}
		if err := s.write(ctx, KeyUser, user); err != nil {
			return err
		}
		if err := s.write(ctx, KeyUsers, users); err != nil {
			return err
		}
		s.log.Info().Str("user_id", user.ID).Msg("anonymous identity created")
	} else {
		if err := user.Normalize(); err != nil {
			return err
		}
		if _, err := s.read(ctx, KeyUsers, &users); err != nil {
			return err
		}
		users = s.normalizeUsers(users)
		listed, ok := domain.FindUser(users, user.ID)
		if !ok || !reflect.DeepEqual(listed, user) {
			users = domain.UpsertUser(users, user)
			if err := s.write(ctx, KeyUsers, users); err != nil {
				return err
			}
			s.log.Warn().
				Str("user_id", user.ID).
				Bool("was_listed", ok).
				Msg("users list out of date with current user, repaired")
		}
	}

	var questions []domain.Question
	if _, err := s.read(ctx, KeyQuestions, &questions); err != nil {
		return err
	}
	var answers []domain.Answer
	if _, err := s.read(ctx, KeyAnswers, &answers); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.users = nonNil(users)
	s.questions = validOnly(s, KeyQuestions, questions)
	s.answers = validOnly(s, KeyAnswers, answers)
	s.mu.Unlock()

	s.log.Debug().
		Str("user_id", user.ID).
		Int("users", len(users)).
		Int("questions", len(questions)).
		Int("answers", len(answers)).
		Msg("store loaded")
	return nil
}

func (s *Store) normalizeUsers(in []domain.User) []domain.User {
	out := make([]domain.User, 0, len(in))
	for _, u := range in {
		if err := u.Normalize(); err != nil {
			s.log.Warn().Err(err).Msg("skipping corrupt user record")
			continue
		}
		out = append(out, u)
	}
	return out
}

type validator interface {
	Validate() error
}

func validOnly[T validator](s *Store, key string, in []T) []T {
	out := make([]T, 0, len(in))
	for _, it := range in {
		if err := it.Validate(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("skipping corrupt record")
			continue
		}
		out = append(out, it)
	}
	return out
}
