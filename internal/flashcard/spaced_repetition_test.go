package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/flashcard"
	"github.com/vytor/mediquiz/internal/models"
)

var today = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func TestUpdateSchedule_Correct(t *testing.T) {
	card := models.Card{Interval: 1, NextReview: "2023-12-31"}

	updated := flashcard.UpdateSchedule(card, models.Correct, today)

	assert.Equal(t, 3, updated.Interval, "1*2+1")
	assert.Equal(t, "2024-01-04", updated.NextReview)
	assert.Equal(t, 1, card.Interval, "input card must not be mutated")
}

func TestUpdateSchedule_Incorrect(t *testing.T) {
	card := models.Card{Interval: 31, NextReview: "2023-12-01"}

	updated := flashcard.UpdateSchedule(card, models.Incorrect, today)

	assert.Equal(t, 1, updated.Interval, "wrong answer resets to one day")
	assert.Equal(t, "2024-01-02", updated.NextReview)
}

func TestUpdateSchedule_IntervalSequence(t *testing.T) {
	card := models.Card{Interval: 1}
	expected := []int{3, 7, 15, 31, 63}

	for _, want := range expected {
		card = flashcard.UpdateSchedule(card, models.Correct, today)
		assert.Equal(t, want, card.Interval)
	}
}

func TestUpdateSchedule_Monotonicity(t *testing.T) {
	for old := 1; old <= 500; old++ {
		card := models.Card{Interval: old}

		right := flashcard.UpdateSchedule(card, models.Correct, today)
		require.Greater(t, right.Interval, old, "correct answer must grow interval %d", old)
		require.Equal(t, 2*old+1, right.Interval)

		wrong := flashcard.UpdateSchedule(card, models.Incorrect, today)
		require.Equal(t, 1, wrong.Interval, "incorrect answer must reset interval %d", old)
	}
}

func TestUpdateSchedule_CrossesMonthAndYear(t *testing.T) {
	card := models.Card{Interval: 15}
	lateDecember := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)

	updated := flashcard.UpdateSchedule(card, models.Correct, lateDecember)

	assert.Equal(t, 31, updated.Interval)
	assert.Equal(t, "2024-01-20", updated.NextReview)
}

func TestFilterDue(t *testing.T) {
	cards := []models.Card{
		{ID: "yesterday", NextReview: "2023-12-31"},
		{ID: "today", NextReview: "2024-01-01"},
		{ID: "tomorrow", NextReview: "2024-01-02"},
	}

	due := flashcard.FilterDue(cards, today)

	require.Len(t, due, 2)
	assert.Equal(t, "yesterday", due[0].ID)
	assert.Equal(t, "today", due[1].ID)
	assert.False(t, flashcard.IsDue(cards[2], today))
}

func TestFilterDue_Empty(t *testing.T) {
	assert.Empty(t, flashcard.FilterDue(nil, today))
}
