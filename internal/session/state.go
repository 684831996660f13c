// Package session holds per-browser review state and drives the review flow:
// pick the first due card, let the user select and strike out options, grade
// the answer, show the explanation, move on.
package session

import (
	"sync"

	"github.com/vytor/mediquiz/internal/models"
)

// Phase is the position of a session in the review flow.
type Phase int

const (
	Unanswered Phase = iota
	Answered
	ExplanationShown
)

func (p Phase) String() string {
	switch p {
	case Answered:
		return "answered"
	case ExplanationShown:
		return "explanation_shown"
	default:
		return "unanswered"
	}
}

// State is the transient review state of one session. The zero value is not
// usable; create it with NewState.
type State struct {
	mu sync.Mutex

	card       *models.Card
	selected   int
	eliminated map[int]bool
	phase      Phase
	outcome    models.Outcome
}

// NewState returns an empty state in the Unanswered phase.
func NewState() *State {
	s := &State{}
	s.reset(nil)
	return s
}

func (s *State) reset(card *models.Card) {
	s.card = card
	s.selected = -1
	s.eliminated = make(map[int]bool)
	s.phase = Unanswered
	s.outcome = models.Incorrect
}

// View is a snapshot of a session for rendering.
type View struct {
	Card      *models.Card
	Remaining int
	// Selected is the chosen option index, or -1.
	Selected   int
	Eliminated []bool
	Phase      Phase
	Outcome    models.Outcome
	// Done is set when no card is due.
	Done bool
}

// HasSelection reports whether an option is selected.
func (v View) HasSelection() bool {
	return v.Selected >= 0
}

// IsEliminated reports whether option i is struck out.
func (v View) IsEliminated(i int) bool {
	return i >= 0 && i < len(v.Eliminated) && v.Eliminated[i]
}

// Answered reports whether the pinned card has been graded.
func (v View) Answered() bool {
	return v.Phase != Unanswered
}

func (s *State) view(remaining int) View {
	v := View{
		Remaining: remaining,
		Selected:  s.selected,
		Phase:     s.phase,
		Outcome:   s.outcome,
		Done:      s.card == nil,
	}
	if s.card != nil {
		card := *s.card
		v.Card = &card
		v.Eliminated = make([]bool, len(card.Options))
		for i := range card.Options {
			v.Eliminated[i] = s.eliminated[i]
		}
	}
	return v
}
