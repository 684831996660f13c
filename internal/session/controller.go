package session

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/flashcard"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

// HistoryRecorder stores submitted answers.
type HistoryRecorder interface {
	Insert(ctx context.Context, entry models.ReviewEntry) (int64, error)
}

// Controller runs the review flow against a card repository.
type Controller struct {
	cards   repository.CardRepository
	history HistoryRecorder
	now     func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock that decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a Controller. history may be nil.
func NewController(cards repository.CardRepository, history HistoryRecorder, opts ...Option) *Controller {
	c := &Controller{cards: cards, history: history, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sync pins the first due card while the session is unanswered and returns
// the number of due cards. After grading, the pinned card is kept even though
// it is usually no longer due. Callers hold st.mu.
func (c *Controller) sync(ctx context.Context, st *State) int {
	due := c.cards.Due(ctx, c.now())
	if st.phase != Unanswered {
		return len(due)
	}
	if len(due) == 0 {
		st.reset(nil)
		return 0
	}
	first := due[0]
	if st.card == nil || st.card.ID != first.ID {
		logger.FromContext(ctx).WithPrefix("session").Debug("pinned card: id=%s", first.ID)
		st.reset(&first)
	} else {
		st.card = &first
	}
	return len(due)
}

func check(st *State, cardID string, want Phase) error {
	if st.card == nil {
		return errors.NewConflictError("no card is due")
	}
	if st.phase != want {
		return errors.NewConflictError(fmt.Sprintf("not allowed while %s", st.phase))
	}
	if cardID != st.card.ID {
		return errors.NewConflictError("card is no longer current")
	}
	return nil
}

func checkOption(st *State, option int) error {
	if option < 0 || option >= len(st.card.Options) {
		return errors.NewValidationError("option", fmt.Sprintf("must be between 0 and %d", len(st.card.Options)-1))
	}
	return nil
}

// Current returns the session view, pinning the first due card if needed.
func (c *Controller) Current(ctx context.Context, st *State) View {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.view(c.sync(ctx, st))
}

// Select marks option as the chosen answer of the pinned card.
func (c *Controller) Select(ctx context.Context, st *State, cardID string, option int) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	remaining := c.sync(ctx, st)
	if err := check(st, cardID, Unanswered); err != nil {
		return st.view(remaining), err
	}
	if err := checkOption(st, option); err != nil {
		return st.view(remaining), err
	}
	st.selected = option
	return st.view(remaining), nil
}

// ToggleEliminate strikes option out, or restores it if already struck out.
func (c *Controller) ToggleEliminate(ctx context.Context, st *State, cardID string, option int) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	remaining := c.sync(ctx, st)
	if err := check(st, cardID, Unanswered); err != nil {
		return st.view(remaining), err
	}
	if err := checkOption(st, option); err != nil {
		return st.view(remaining), err
	}
	if st.eliminated[option] {
		delete(st.eliminated, option)
	} else {
		st.eliminated[option] = true
	}
	return st.view(remaining), nil
}

// Submit grades the selected option, reschedules the card and records the
// review. Without a selection it fails with a validation error and changes
// nothing.
func (c *Controller) Submit(ctx context.Context, st *State, cardID string) (View, error) {
	log := logger.FromContext(ctx).WithPrefix("session")
	st.mu.Lock()
	defer st.mu.Unlock()

	remaining := c.sync(ctx, st)
	if err := check(st, cardID, Unanswered); err != nil {
		return st.view(remaining), err
	}
	if st.selected < 0 {
		return st.view(remaining), errors.NewValidationError("option", "no option selected")
	}

	now := c.now()
	outcome := models.OutcomeOf(st.selected == st.card.CorrectIndex)
	updated, err := c.cards.UpdateSchedule(ctx, st.card.ID, outcome, now)
	if err != nil {
		log.Error("failed to reschedule card %s: %v", st.card.ID, err)
		return st.view(remaining), err
	}

	st.card = updated
	st.phase = Answered
	st.outcome = outcome
	if !flashcard.IsDue(*updated, now) {
		remaining--
	}
	log.Info("answer graded: card_id=%s, outcome=%s, interval=%d", updated.ID, outcome, updated.Interval)

	c.record(ctx, *updated, outcome, now)
	return st.view(remaining), nil
}

func (c *Controller) record(ctx context.Context, card models.Card, outcome models.Outcome, now time.Time) {
	if c.history == nil {
		return
	}
	_, err := c.history.Insert(ctx, models.ReviewEntry{
		CardID:     card.ID,
		Question:   card.Question,
		Correct:    outcome == models.Correct,
		Interval:   card.Interval,
		NextReview: card.NextReview,
		ReviewedOn: flashcard.FormatDate(now),
		ReviewedAt: now,
	})
	if err != nil {
		logger.FromContext(ctx).WithPrefix("session").Warn("failed to record review for card %s: %v", card.ID, err)
	}
}

// ShowExplanation reveals the explanation of a graded card.
func (c *Controller) ShowExplanation(ctx context.Context, st *State) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	remaining := c.sync(ctx, st)
	if st.card == nil || st.phase != Answered {
		return st.view(remaining), errors.NewConflictError(fmt.Sprintf("not allowed while %s", st.phase))
	}
	st.phase = ExplanationShown
	return st.view(remaining), nil
}

// Advance leaves the explained card and pins the next due one.
func (c *Controller) Advance(ctx context.Context, st *State) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.phase != ExplanationShown {
		return st.view(c.sync(ctx, st)), errors.NewConflictError(fmt.Sprintf("not allowed while %s", st.phase))
	}
	st.reset(nil)
	return st.view(c.sync(ctx, st)), nil
}
