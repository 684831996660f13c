package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of generator.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
