package ports

import (
	"context"

	"github.com/askanything/board/internal/core/domain"
)

// QuestionSummary is the list view of a question.
type QuestionSummary struct {
	Question    domain.Question
	AuthorName  string
	AnswerCount int
	MyVote      domain.Direction
}

// AnswerView is an answer with its author name and the current user's vote.
type AnswerView struct {
	Answer     domain.Answer
	AuthorName string
	MyVote     domain.Direction
}

// QuestionDetail is a question page: the question and its answers, newest first.
type QuestionDetail struct {
	Question   domain.Question
	AuthorName string
	MyVote     domain.Direction
	Answers    []AnswerView
}

// VotedQuestion is one entry of the current user's question votes.
type VotedQuestion struct {
	Question  domain.Question
	Direction domain.Direction
}

// BoardService is the set of operations offered to the UI layer. Every call
// acts on behalf of the current user and is atomic from the caller's view.
type BoardService interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
	RenameUser(ctx context.Context, name string) (domain.User, error)
	AbandonProfile(ctx context.Context) (domain.User, error)
	VotedQuestions(ctx context.Context) ([]VotedQuestion, error)

	ListQuestions(ctx context.Context) ([]QuestionSummary, error)
	GetQuestion(ctx context.Context, id string) (*QuestionDetail, error)
	CreateQuestion(ctx context.Context, text, description string) (domain.Question, error)
	EditQuestion(ctx context.Context, id, text string) error
	DeleteQuestion(ctx context.Context, id string) error

	CreateAnswer(ctx context.Context, questionID, text string) (domain.Answer, error)
	EditAnswer(ctx context.Context, id, text string) error
	DeleteAnswer(ctx context.Context, id string) error

	VoteQuestion(ctx context.Context, id string, dir domain.Direction) error
	VoteAnswer(ctx context.Context, id string, dir domain.Direction) error
	RetractQuestionVote(ctx context.Context, id string) error

	Recount(ctx context.Context) error
}
