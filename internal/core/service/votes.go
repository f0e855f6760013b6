package service

import (
	"context"

	"github.com/askanything/board/internal/core/domain"
)

// VoteQuestion casts, flips or retracts the current user's vote on a
// question. The user's vote map and the question's counters are persisted
// together; if the second write fails the first one is undone.
func (s *BoardService) VoteQuestion(ctx context.Context, id string, dir domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voteQuestion(ctx, id, dir)
}

func (s *BoardService) voteQuestion(ctx context.Context, id string, dir domain.Direction) error {
	user, ok := s.store.User()
	if !ok {
		return nil
	}
	nextUser, questions, changed, err := domain.CastQuestionVote(user, s.store.Questions(), id, dir)
	if err != nil || !changed {
		return err
	}
	if err := s.commitVote(ctx, user, nextUser, func() error {
		return s.store.SetQuestions(ctx, questions)
	}); err != nil {
		return err
	}
	s.log.Info().
		Str("question_id", id).
		Str("direction", string(dir)).
		Str("vote", string(nextUser.VotedQuestions[id])).
		Msg("question vote")
	return nil
}

func (s *BoardService) VoteAnswer(ctx context.Context, id string, dir domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User()
	if !ok {
		return nil
	}
	nextUser, answers, changed, err := domain.CastAnswerVote(user, s.store.Answers(), id, dir)
	if err != nil || !changed {
		return err
	}
	if err := s.commitVote(ctx, user, nextUser, func() error {
		return s.store.SetAnswers(ctx, answers)
	}); err != nil {
		return err
	}
	s.log.Info().
		Str("answer_id", id).
		Str("direction", string(dir)).
		Str("vote", string(nextUser.VotedAnswers[id])).
		Msg("answer vote")
	return nil
}

// RetractQuestionVote removes the current user's vote on a question, if any.
// A vote on a question that no longer exists is simply dropped.
func (s *BoardService) RetractQuestionVote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User()
	if !ok {
		return nil
	}
	current, voted := user.VotedQuestions[id]
	if !voted {
		return nil
	}
	if _, exists := domain.FindQuestion(s.store.Questions(), id); exists {
		return s.voteQuestion(ctx, id, current)
	}

	next := user.Clone()
	delete(next.VotedQuestions, id)
	return s.store.SetUser(ctx, next)
}

// Recount rebuilds all counters from the vote maps of every known user. The
// current user's own record wins over its copy in the users list.
func (s *BoardService) Recount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.store.Users()
	if u, ok := s.store.User(); ok {
		users = domain.UpsertUser(users, u)
	}
	prevQuestions := s.store.Questions()
	questions, answers := domain.Recount(users, prevQuestions, s.store.Answers())
	if err := s.store.SetQuestions(ctx, questions); err != nil {
		return err
	}
	if err := s.store.SetAnswers(ctx, answers); err != nil {
		if rerr := s.store.SetQuestions(ctx, prevQuestions); rerr != nil {
			s.log.Error().Err(rerr).Msg("failed to restore questions after recount failure")
		}
		return err
	}
	s.log.Info().Int("questions", len(questions)).Int("answers", len(answers)).Msg("counters recounted")
	return nil
}

// commitVote persists the voter first and then the target list; a failed
// target write restores the previous voter.
func (s *BoardService) commitVote(ctx context.Context, prev, next domain.User, writeTargets func() error) error {
	if err := s.store.SetUser(ctx, next); err != nil {
		return err
	}
	if err := writeTargets(); err != nil {
		if rerr := s.store.SetUser(ctx, prev); rerr != nil {
			s.log.Error().Err(rerr).Str("user_id", prev.ID).Msg("failed to restore voter after vote failure")
		}
		return err
	}
	return nil
}
