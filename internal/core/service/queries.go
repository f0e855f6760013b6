package service

import (
	"context"

	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
)

// ListQuestions returns the questions newest first with answer counts and
// author names.
func (s *BoardService) ListQuestions(_ context.Context) ([]ports.QuestionSummary, error) {
	user, _ := s.store.User()
	names := s.authorNames()

	counts := make(map[string]int)
	for _, a := range s.store.Answers() {
		counts[a.QuestionID]++
	}

	questions := s.store.Questions()
	out := make([]ports.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		out = append(out, ports.QuestionSummary{
			Question:    q,
			AuthorName:  nameOf(names, q.UserID),
			AnswerCount: counts[q.ID],
			MyVote:      user.VotedQuestions[q.ID],
		})
	}
	return out, nil
}

func (s *BoardService) GetQuestion(_ context.Context, id string) (*ports.QuestionDetail, error) {
	q, ok := domain.FindQuestion(s.store.Questions(), id)
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	user, _ := s.store.User()
	names := s.authorNames()

	answers := domain.AnswersFor(s.store.Answers(), id)
	views := make([]ports.AnswerView, 0, len(answers))
	for _, a := range answers {
		views = append(views, ports.AnswerView{
			Answer:     a,
			AuthorName: nameOf(names, a.UserID),
			MyVote:     user.VotedAnswers[a.ID],
		})
	}

	return &ports.QuestionDetail{
		Question:   q,
		AuthorName: nameOf(names, q.UserID),
		MyVote:     user.VotedQuestions[q.ID],
		Answers:    views,
	}, nil
}

// VotedQuestions lists the current user's question votes in display order.
// Votes on questions that no longer exist are not listed.
func (s *BoardService) VotedQuestions(_ context.Context) ([]ports.VotedQuestion, error) {
	user, ok := s.store.User()
	if !ok {
		return nil, domain.ErrNoCurrentUser
	}
	out := make([]ports.VotedQuestion, 0, len(user.VotedQuestions))
	for _, q := range s.store.Questions() {
		if d, ok := user.VotedQuestions[q.ID]; ok {
			out = append(out, ports.VotedQuestion{Question: q, Direction: d})
		}
	}
	return out, nil
}

func (s *BoardService) authorNames() map[string]string {
	users := s.store.Users()
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names
}

func nameOf(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return domain.DefaultName
}
