package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/testutil/mocks"
)

func TestStatsService_GetOverview(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	reviews := new(mocks.MockReviewRepository)
	cards := new(mocks.MockCardRepository)

	reviews.On("Summary", mock.Anything, "").Return(&models.ReviewStats{TotalReviews: 10, Correct: 7, Accuracy: 70}, nil)
	reviews.On("Summary", mock.Anything, "2025-03-04").Return(&models.ReviewStats{TotalReviews: 4, Correct: 2, Accuracy: 50}, nil)
	reviews.On("Daily", mock.Anything, "2025-03-04").Return([]models.DailyReviewStat{{Day: "2025-03-10", Total: 4, Correct: 2}}, nil)
	reviews.On("List", mock.Anything, models.ReviewFilter{Limit: 20}).Return([]models.ReviewEntry{{ID: 1}}, nil)
	cards.On("LoadAll", mock.Anything).Return([]models.Card{
		{ID: "a", NextReview: "2025-03-09"},
		{ID: "b", NextReview: "2025-03-11"},
		{ID: "c", NextReview: "2025-03-10"},
	})

	svc := services.NewStatsService(reviews, cards)
	overview, err := svc.GetOverview(context.Background(), today, 7)

	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", overview.Since)
	assert.Equal(t, 10, overview.AllTime.TotalReviews)
	assert.Equal(t, 3, overview.AllTime.CardsTotal)
	assert.Equal(t, 2, overview.AllTime.CardsDue)
	assert.Equal(t, 4, overview.Period.TotalReviews)
	assert.Len(t, overview.Daily, 1)
	assert.Len(t, overview.Recent, 1)
	reviews.AssertExpectations(t)
}

func TestStatsService_GetOverview_RepositoryError(t *testing.T) {
	reviews := new(mocks.MockReviewRepository)
	reviews.On("Summary", mock.Anything, mock.Anything).Return(nil, stderrors.New("db closed"))

	svc := services.NewStatsService(reviews, new(mocks.MockCardRepository))
	_, err := svc.GetOverview(context.Background(), time.Now(), 7)

	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}
