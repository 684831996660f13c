package models

// Card is one multiple-choice quiz item with its review schedule.
// Only Interval and NextReview change after creation.
type Card struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Interval     int      `json:"interval"`
	NextReview   string   `json:"next_review"`
}

// NewCard is the creation input for a card; scheduling fields are assigned by the store.
type NewCard struct {
	Question     string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Outcome is the result of answering a card.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// OutcomeOf maps a boolean answer result to an Outcome.
func OutcomeOf(correct bool) Outcome {
	if correct {
		return Correct
	}
	return Incorrect
}
