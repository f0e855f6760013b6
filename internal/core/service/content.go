package service

import (
	"context"
	"errors"

	"github.com/askanything/board/internal/core/domain"
)

// CreateQuestion prepends a new question authored by the current user.
func (s *BoardService) CreateQuestion(ctx context.Context, text, description string) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User()
	if !ok {
		return domain.Question{}, domain.ErrNoCurrentUser
	}
	q, err := domain.NewQuestion(s.newID(), user, text, description, domain.Timestamp(s.now()))
	if err != nil {
		s.log.Debug().Err(err).Msg("question declined")
		return domain.Question{}, err
	}
	if err := s.store.SetQuestions(ctx, domain.Prepend(s.store.Questions(), q)); err != nil {
		return domain.Question{}, err
	}
	s.log.Info().Str("question_id", q.ID).Str("user_id", user.ID).Msg("question created")
	return q, nil
}

func (s *BoardService) EditQuestion(ctx context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.store.User()
	out, changed, err := domain.EditText(user, s.store.Questions(), id, text)
	if err != nil || !changed {
		s.logDeclined(err, "question", id)
		return err
	}
	if err := s.store.SetQuestions(ctx, out); err != nil {
		return err
	}
	s.log.Info().Str("question_id", id).Msg("question edited")
	return nil
}

// DeleteQuestion removes a question. Its answers are left in place.
func (s *BoardService) DeleteQuestion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.store.User()
	out, changed, err := domain.Remove(user, s.store.Questions(), id)
	if err != nil || !changed {
		s.logDeclined(err, "question", id)
		return err
	}
	if err := s.store.SetQuestions(ctx, out); err != nil {
		return err
	}
	s.log.Info().Str("question_id", id).Msg("question deleted")
	return nil
}

// CreateAnswer prepends a new answer to an existing question.
func (s *BoardService) CreateAnswer(ctx context.Context, questionID, text string) (domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User()
	if !ok {
		return domain.Answer{}, domain.ErrNoCurrentUser
	}
	if _, ok := domain.FindQuestion(s.store.Questions(), questionID); !ok {
		return domain.Answer{}, domain.ErrQuestionNotFound
	}
	a, err := domain.NewAnswer(s.newID(), questionID, user, text, domain.Timestamp(s.now()))
	if err != nil {
		s.log.Debug().Err(err).Msg("answer declined")
		return domain.Answer{}, err
	}
	if err := s.store.SetAnswers(ctx, domain.Prepend(s.store.Answers(), a)); err != nil {
		return domain.Answer{}, err
	}
	s.log.Info().Str("answer_id", a.ID).Str("question_id", questionID).Msg("answer created")
	return a, nil
}

func (s *BoardService) EditAnswer(ctx context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.store.User()
	out, changed, err := domain.EditText(user, s.store.Answers(), id, text)
	if err != nil || !changed {
		s.logDeclined(err, "answer", id)
		return err
	}
	if err := s.store.SetAnswers(ctx, out); err != nil {
		return err
	}
	s.log.Info().Str("answer_id", id).Msg("answer edited")
	return nil
}

func (s *BoardService) DeleteAnswer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.store.User()
	out, changed, err := domain.Remove(user, s.store.Answers(), id)
	if err != nil || !changed {
		s.logDeclined(err, "answer", id)
		return err
	}
	if err := s.store.SetAnswers(ctx, out); err != nil {
		return err
	}
	s.log.Info().Str("answer_id", id).Msg("answer deleted")
	return nil
}

func (s *BoardService) logDeclined(err error, kind, id string) {
	ev := s.log.Debug().Str("kind", kind).Str("id", id)
	switch {
	case err == nil:
		ev.Msg("not found, nothing to do")
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrEmptyText):
		ev.Err(err).Msg("change declined")
	default:
		ev.Err(err).Msg("change failed")
	}
}
