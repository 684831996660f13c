package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mediquiz/internal/models"
)

// MockGenerator is a mock implementation of services.QuizGenerator and
// services.OutlineGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Quiz(ctx context.Context, notes, exam string) ([]models.NewCard, error) {
	args := m.Called(ctx, notes, exam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewCard), args.Error(1)
}

func (m *MockGenerator) Outline(ctx context.Context, lecture, exam string) (models.Outline, error) {
	args := m.Called(ctx, lecture, exam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Outline), args.Error(1)
}
