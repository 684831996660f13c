package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mediquiz/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) LoadAll(ctx context.Context) []models.Card {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Card)
}

func (m *MockCardRepository) SaveAll(ctx context.Context, cards []models.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCardRepository) AppendCard(ctx context.Context, card models.NewCard) (models.Card, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(models.Card), args.Error(1)
}

func (m *MockCardRepository) AppendCards(ctx context.Context, cards []models.NewCard) ([]models.Card, error) {
	args := m.Called(ctx, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateSchedule(ctx context.Context, id string, outcome models.Outcome, today time.Time) (*models.Card, error) {
	args := m.Called(ctx, id, outcome, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) Due(ctx context.Context, today time.Time) []models.Card {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Card)
}
