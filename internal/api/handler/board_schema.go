package handler

import (
	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
)

// --- Request types ---

type createQuestionRequest struct {
	Text        string `json:"text"        validate:"required,max=500"`
	Description string `json:"description" validate:"max=20000"`
}

type textRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

type voteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type renameRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// --- Response types ---

type questionSummaryResponse struct {
	domain.Question
	AuthorName  string           `json:"authorName"`
	AnswerCount int              `json:"answerCount"`
	TotalVotes  int              `json:"totalVotes"`
	MyVote      domain.Direction `json:"myVote,omitempty"`
}

type answerResponse struct {
	domain.Answer
	AuthorName string           `json:"authorName"`
	MyVote     domain.Direction `json:"myVote,omitempty"`
}

type questionDetailResponse struct {
	domain.Question
	AuthorName string           `json:"authorName"`
	MyVote     domain.Direction `json:"myVote,omitempty"`
	Answers    []answerResponse `json:"answers"`
}

type votedQuestionResponse struct {
	QuestionID string           `json:"questionId"`
	Text       string           `json:"text"`
	Direction  domain.Direction `json:"direction"`
}

func toSummaries(in []ports.QuestionSummary) []questionSummaryResponse {
	out := make([]questionSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, questionSummaryResponse{
			Question:    s.Question,
			AuthorName:  s.AuthorName,
			AnswerCount: s.AnswerCount,
			TotalVotes:  s.Question.Votes.Total(),
			MyVote:      s.MyVote,
		})
	}
	return out
}

func toDetail(d *ports.QuestionDetail) questionDetailResponse {
	answers := make([]answerResponse, 0, len(d.Answers))
	for _, a := range d.Answers {
		answers = append(answers, answerResponse{Answer: a.Answer, AuthorName: a.AuthorName, MyVote: a.MyVote})
	}
	return questionDetailResponse{
		Question:   d.Question,
		AuthorName: d.AuthorName,
		MyVote:     d.MyVote,
		Answers:    answers,
	}
}
