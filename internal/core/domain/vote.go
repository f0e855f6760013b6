package domain

// Direction is a single vote. The empty Direction means "no vote".
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Valid reports whether d is Up or Down.
func (d Direction) Valid() bool {
	return d == Up || d == Down
}

// Votes holds the aggregate counters of a target.
type Votes struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

// Total is the number of active votes in both directions.
func (v Votes) Total() int {
	return v.Up + v.Down
}

// add shifts the counter for d by delta. Counters never go below zero.
func (v Votes) add(d Direction, delta int) Votes {
	switch d {
	case Up:
		v.Up = max(v.Up+delta, 0)
	case Down:
		v.Down = max(v.Down+delta, 0)
	}
	return v
}

// Transition computes the voter's next vote and the target's next counters
// when the voter requests dir while currently holding current.
//
//	current == dir   -> retract: vote removed, dir counter -1
//	otherwise        -> set: opposite counter -1 if held, dir counter +1
func Transition(current, dir Direction, counters Votes) (Direction, Votes) {
	if current == dir {
		return "", counters.add(dir, -1)
	}
	if current.Valid() {
		counters = counters.add(current, -1)
	}
	return dir, counters.add(dir, 1)
}

// Target is a votable, authored item stored in a list.
type Target[T any] interface {
	TargetID() string
	AuthorID() string
	Tally() Votes
	WithTally(Votes) T
	WithText(string) T
}

// castVote applies dir to the item with the given id, updating voted in the
// same step. ok is false when no item matches; nothing is changed then.
func castVote[T Target[T]](voted map[string]Direction, items []T, id string, dir Direction) (map[string]Direction, []T, bool) {
	idx := indexOf(items, id)
	if idx < 0 {
		return voted, items, false
	}

	next, tally := Transition(voted[id], dir, items[idx].Tally())

	outVotes := cloneVotes(voted)
	if next == "" {
		delete(outVotes, id)
	} else {
		outVotes[id] = next
	}

	outItems := make([]T, len(items))
	copy(outItems, items)
	outItems[idx] = items[idx].WithTally(tally)
	return outVotes, outItems, true
}

// CastQuestionVote applies voter's dir on question qid. changed is false when
// the question does not exist or the voter has no identity.
func CastQuestionVote(voter User, questions []Question, qid string, dir Direction) (User, []Question, bool, error) {
	if !dir.Valid() {
		return voter, questions, false, ErrInvalidDirection
	}
	if voter.ID == "" {
		return voter, questions, false, nil
	}
	voted, out, ok := castVote(voter.VotedQuestions, questions, qid, dir)
	if !ok {
		return voter, questions, false, nil
	}
	next := voter.Clone()
	next.VotedQuestions = voted
	return next, out, true, nil
}

// CastAnswerVote is CastQuestionVote for answers.
func CastAnswerVote(voter User, answers []Answer, aid string, dir Direction) (User, []Answer, bool, error) {
	if !dir.Valid() {
		return voter, answers, false, ErrInvalidDirection
	}
	if voter.ID == "" {
		return voter, answers, false, nil
	}
	voted, out, ok := castVote(voter.VotedAnswers, answers, aid, dir)
	if !ok {
		return voter, answers, false, nil
	}
	next := voter.Clone()
	next.VotedAnswers = voted
	return next, out, true, nil
}

// Recount rebuilds every counter from the vote maps of users. Votes for
// ids that are no longer in the lists are ignored.
func Recount(users []User, questions []Question, answers []Answer) ([]Question, []Answer) {
	qTally := make(map[string]Votes, len(questions))
	aTally := make(map[string]Votes, len(answers))
	for _, u := range users {
		for id, d := range u.VotedQuestions {
			qTally[id] = qTally[id].add(d, 1)
		}
		for id, d := range u.VotedAnswers {
			aTally[id] = aTally[id].add(d, 1)
		}
	}

	outQ := make([]Question, len(questions))
	for i, q := range questions {
		outQ[i] = q.WithTally(qTally[q.ID])
	}
	outA := make([]Answer, len(answers))
	for i, a := range answers {
		outA[i] = a.WithTally(aTally[a.ID])
	}
	return outQ, outA
}

func indexOf[T Target[T]](items []T, id string) int {
	for i, it := range items {
		if it.TargetID() == id {
			return i
		}
	}
	return -1
}
