package domain

import "strings"

// Answer belongs to a question through QuestionID. Answers survive the
// deletion of their question.
type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	UserID     string `json:"userId"`
	CreatedAt  string `json:"createdAt"`
	Votes      Votes  `json:"votes"`
}

func (a Answer) TargetID() string { return a.ID }
func (a Answer) AuthorID() string { return a.UserID }
func (a Answer) Tally() Votes     { return a.Votes }

func (a Answer) WithTally(v Votes) Answer {
	a.Votes = v
	return a
}

func (a Answer) WithText(text string) Answer {
	a.Text = text
	return a
}

func (a Answer) Validate() error {
	if a.ID == "" || a.UserID == "" {
		return ErrCorruptRecord
	}
	return nil
}

// NewAnswer builds an answer to questionID authored by author.
func NewAnswer(id, questionID string, author User, text, createdAt string) (Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, ErrEmptyText
	}
	if author.ID == "" {
		return Answer{}, ErrNoCurrentUser
	}
	return Answer{
		ID:         id,
		QuestionID: questionID,
		Text:       text,
		UserID:     author.ID,
		CreatedAt:  createdAt,
	}, nil
}

// AnswersFor returns the answers of questionID, keeping list order.
func AnswersFor(answers []Answer, questionID string) []Answer {
	out := make([]Answer, 0)
	for _, a := range answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}
