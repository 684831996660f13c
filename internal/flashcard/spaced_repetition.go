package flashcard

import (
	"time"

	"github.com/vytor/mediquiz/internal/models"
)

// DateLayout is the on-disk format of Card.NextReview. Lexicographic order of
// strings in this layout matches calendar order.
const DateLayout = "2006-01-02"

// FormatDate renders t as a review date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UpdateSchedule applies the doubling rule: a wrong answer resets the interval
// to one day, a right answer moves it to interval*2+1. The next review is
// today plus the new interval.
func UpdateSchedule(card models.Card, outcome models.Outcome, today time.Time) models.Card {
	if outcome == models.Correct {
		card.Interval = card.Interval*2 + 1
	} else {
		card.Interval = 1
	}
	card.NextReview = FormatDate(today.AddDate(0, 0, card.Interval))
	return card
}

// IsDue reports whether the card should be reviewed on or before today.
func IsDue(card models.Card, today time.Time) bool {
	return card.NextReview <= FormatDate(today)
}

// FilterDue returns the due cards in stored order.
func FilterDue(cards []models.Card, today time.Time) []models.Card {
	due := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if IsDue(c, today) {
			due = append(due, c)
		}
	}
	return due
}
