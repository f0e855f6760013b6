package domain

import (
	"strings"
	"time"
)

// TimestampLayout matches the ISO-8601 form written for createdAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t in TimestampLayout (UTC).
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Question is a top-level post. Description is optional markdown.
type Question struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt"`
	Votes       Votes  `json:"votes"`
}

func (q Question) TargetID() string { return q.ID }
func (q Question) AuthorID() string { return q.UserID }
func (q Question) Tally() Votes     { return q.Votes }

func (q Question) WithTally(v Votes) Question {
	q.Votes = v
	return q
}

func (q Question) WithText(text string) Question {
	q.Text = text
	return q
}

// Validate rejects records without an id or author.
func (q Question) Validate() error {
	if q.ID == "" || q.UserID == "" {
		return ErrCorruptRecord
	}
	return nil
}

// NewQuestion builds a question authored by author with zeroed counters.
func NewQuestion(id string, author User, text, description, createdAt string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, ErrEmptyText
	}
	if author.ID == "" {
		return Question{}, ErrNoCurrentUser
	}
	return Question{
		ID:          id,
		Text:        text,
		Description: strings.TrimSpace(description),
		UserID:      author.ID,
		CreatedAt:   createdAt,
	}, nil
}

// FindQuestion looks a question up by id.
func FindQuestion(questions []Question, id string) (Question, bool) {
	if i := indexOf(questions, id); i >= 0 {
		return questions[i], true
	}
	return Question{}, false
}
