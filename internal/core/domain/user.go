package domain

import (
	"fmt"
	"strings"
)

// DefaultName is the display name given to every freshly generated identity.
const DefaultName = "Anonymous"

// User is the local anonymous identity. Vote maps hold only active votes.
type User struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	VotedQuestions map[string]Direction `json:"votedQuestions"`
	VotedAnswers   map[string]Direction `json:"votedAnswers"`
}

// NewUser builds an identity with the default name and empty vote maps.
func NewUser(id string) User {
	return User{
		ID:             id,
		Name:           DefaultName,
		VotedQuestions: map[string]Direction{},
		VotedAnswers:   map[string]Direction{},
	}
}

// Normalize fills vote maps missing from older records and drops entries
// that are not a valid direction. It fails when the record has no id.
func (u *User) Normalize() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user: %w: missing id", ErrCorruptRecord)
	}
	u.VotedQuestions = normalizeVotes(u.VotedQuestions)
	u.VotedAnswers = normalizeVotes(u.VotedAnswers)
	return nil
}

// Clone returns a copy whose vote maps can be mutated independently.
func (u User) Clone() User {
	u.VotedQuestions = cloneVotes(u.VotedQuestions)
	u.VotedAnswers = cloneVotes(u.VotedAnswers)
	return u
}

// DisplayName falls back to DefaultName for blank names.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) == "" {
		return DefaultName
	}
	return u.Name
}

// Rename returns u with a trimmed new name.
func (u User) Rename(name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return u, ErrEmptyText
	}
	out := u.Clone()
	out.Name = name
	return out, nil
}

// UpsertUser replaces the entry with the same id or appends u.
func UpsertUser(users []User, u User) []User {
	out := make([]User, 0, len(users)+1)
	found := false
	for _, existing := range users {
		if existing.ID == u.ID {
			out = append(out, u)
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, u)
	}
	return out
}

// FindUser looks a user up by id.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func normalizeVotes(in map[string]Direction) map[string]Direction {
	out := make(map[string]Direction, len(in))
	for id, d := range in {
		if d.Valid() {
			out[id] = d
		}
	}
	return out
}

func cloneVotes(in map[string]Direction) map[string]Direction {
	out := make(map[string]Direction, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
