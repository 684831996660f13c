package services

import (
	"context"
	"time"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/flashcard"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

// recentLimit is how many recent reviews the overview lists.
const recentLimit = 20

// ReviewOverview is everything the stats page shows.
type ReviewOverview struct {
	Since   string
	AllTime models.ReviewStats
	Period  models.ReviewStats
	Daily   []models.DailyReviewStat
	Recent  []models.ReviewEntry
}

// StatsService handles review statistics
type StatsService interface {
	GetOverview(ctx context.Context, today time.Time, days int) (*ReviewOverview, error)
}

type statsService struct {
	reviews repository.ReviewRepository
	cards   repository.CardRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(reviews repository.ReviewRepository, cards repository.CardRepository) StatsService {
	return &statsService{reviews: reviews, cards: cards}
}

func (s *statsService) GetOverview(ctx context.Context, today time.Time, days int) (*ReviewOverview, error) {
	log := logger.FromContext(ctx)
	if days < 1 {
		days = 1
	}
	since := flashcard.FormatDate(today.AddDate(0, 0, -(days - 1)))
	log.Debug("getting review overview: since=%s", since)

	allTime, err := s.reviews.Summary(ctx, "")
	if err != nil {
		log.Error("failed to get review summary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	period, err := s.reviews.Summary(ctx, since)
	if err != nil {
		log.Error("failed to get period summary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	daily, err := s.reviews.Daily(ctx, since)
	if err != nil {
		log.Error("failed to get daily stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	recent, err := s.reviews.List(ctx, models.ReviewFilter{Limit: recentLimit})
	if err != nil {
		log.Error("failed to list recent reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	cards := s.cards.LoadAll(ctx)
	allTime.CardsTotal = len(cards)
	allTime.CardsDue = len(flashcard.FilterDue(cards, today))

	return &ReviewOverview{
		Since:   since,
		AllTime: *allTime,
		Period:  *period,
		Daily:   daily,
		Recent:  recent,
	}, nil
}
