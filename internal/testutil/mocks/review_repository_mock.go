package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mediquiz/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Insert(ctx context.Context, entry models.ReviewEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEntry), args.Error(1)
}

func (m *MockReviewRepository) Summary(ctx context.Context, since string) (*models.ReviewStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStats), args.Error(1)
}

func (m *MockReviewRepository) Daily(ctx context.Context, since string) ([]models.DailyReviewStat, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyReviewStat), args.Error(1)
}
