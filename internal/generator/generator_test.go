package generator_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/generator"
	"github.com/vytor/mediquiz/internal/testutil/mocks"
)

func TestGenerator_Quiz(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "문제 3개") && strings.Contains(p, "[족보 - 형식 참고용]")
	})).Return(`[{"question": "q", "options": ["a", "b"], "correct_index": 1, "explanation": "e"}]`, nil).Once()

	g := generator.New(provider, generator.WithQuestionCount(3))
	cards, err := g.Quiz(context.Background(), "notes", "exam")

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 1, cards[0].CorrectIndex)
	assert.Equal(t, 3, g.QuestionCount())
	provider.AssertExpectations(t)
}

func TestGenerator_Outline(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return(`[{"main_topic": "t", "sub_sections": [{"key": "k", "value": "v"}]}]`, nil)

	outline, err := generator.New(provider).Outline(context.Background(), "lecture", "")

	require.NoError(t, err)
	require.Len(t, outline, 1)
	assert.Equal(t, "t", outline[0].MainTopic)
}

func TestGenerator_RequiresText(t *testing.T) {
	provider := new(mocks.MockProvider)
	g := generator.New(provider)

	_, err := g.Quiz(context.Background(), "  ", "exam")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = g.Outline(context.Background(), "", "exam")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerator_WithoutProvider(t *testing.T) {
	g := generator.New(nil)

	assert.False(t, g.Available())
	_, err := g.Quiz(context.Background(), "notes", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))
}

func TestGenerator_ProviderErrors(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Generate", mock.Anything, mock.Anything).Return("", stderrors.New("quota exceeded")).Once()
	provider.On("Generate", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded).Once()
	g := generator.New(provider, generator.WithTimeout(time.Second))

	_, err := g.Quiz(context.Background(), "notes", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))

	_, err = g.Quiz(context.Background(), "notes", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))
}
