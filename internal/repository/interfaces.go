package repository

import (
	"context"
	"time"

	"github.com/vytor/mediquiz/internal/models"
)

// CardRepository handles quiz card persistence. Every method is a complete
// load, mutate and save cycle over the stored collection.
type CardRepository interface {
	// LoadAll returns the stored cards in creation order. A missing or
	// unreadable store yields an empty collection.
	LoadAll(ctx context.Context) []models.Card
	SaveAll(ctx context.Context, cards []models.Card) error
	AppendCard(ctx context.Context, card models.NewCard) (models.Card, error)
	AppendCards(ctx context.Context, cards []models.NewCard) ([]models.Card, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteAll(ctx context.Context) error
	UpdateSchedule(ctx context.Context, id string, outcome models.Outcome, today time.Time) (*models.Card, error)
	Due(ctx context.Context, today time.Time) []models.Card
}

// ReviewRepository handles review history data access
type ReviewRepository interface {
	Insert(ctx context.Context, entry models.ReviewEntry) (int64, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewEntry, error)
	Summary(ctx context.Context, since string) (*models.ReviewStats, error)
	Daily(ctx context.Context, since string) ([]models.DailyReviewStat, error)
}
