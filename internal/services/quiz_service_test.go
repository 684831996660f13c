package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/testutil/mocks"
)

type QuizServiceSuite struct {
	suite.Suite
	repo *mocks.MockCardRepository
	gen  *mocks.MockGenerator
	svc  services.QuizService
}

func (s *QuizServiceSuite) SetupTest() {
	s.repo = new(mocks.MockCardRepository)
	s.gen = new(mocks.MockGenerator)
	s.svc = services.NewQuizService(s.repo, s.gen)
}

func upload(name, body string) services.Upload {
	return services.Upload{Filename: name, Body: strings.NewReader(body)}
}

func (s *QuizServiceSuite) TestGenerateCards_StoresGenerated() {
	generated := []models.NewCard{{Question: "q", Options: []string{"a", "b"}, CorrectIndex: 1}}
	stored := []models.Card{{ID: "id-1", Question: "q", Options: []string{"a", "b"}, CorrectIndex: 1, Interval: 1, NextReview: "2025-03-10"}}
	exam := upload("jokbo.txt", "  족보 문제  ")

	s.gen.On("Quiz", mock.Anything, "간염 정리", "족보 문제").Return(generated, nil)
	s.repo.On("AppendCards", mock.Anything, generated).Return(stored, nil)

	created, err := s.svc.GenerateCards(context.Background(), upload("notes.txt", "간염 정리\n"), &exam)

	s.Require().NoError(err)
	s.Equal(stored, created)
	s.gen.AssertExpectations(s.T())
	s.repo.AssertExpectations(s.T())
}

func (s *QuizServiceSuite) TestGenerateCards_WithoutExam() {
	s.gen.On("Quiz", mock.Anything, "notes", "").Return([]models.NewCard{{Question: "q"}}, nil)
	s.repo.On("AppendCards", mock.Anything, mock.Anything).Return([]models.Card{{ID: "x"}}, nil)

	created, err := s.svc.GenerateCards(context.Background(), upload("notes.txt", "notes"), nil)

	s.Require().NoError(err)
	s.Len(created, 1)
}

func (s *QuizServiceSuite) TestGenerateCards_RejectsBadUploads() {
	_, err := s.svc.GenerateCards(context.Background(), services.Upload{}, nil)
	s.True(errors.HasCode(err, errors.ErrCodeValidation))

	_, err = s.svc.GenerateCards(context.Background(), upload("notes.hwp", "text"), nil)
	s.True(errors.HasCode(err, errors.ErrCodeValidation))

	_, err = s.svc.GenerateCards(context.Background(), upload("notes.txt", "   "), nil)
	s.True(errors.HasCode(err, errors.ErrCodeValidation))

	s.gen.AssertNotCalled(s.T(), "Quiz", mock.Anything, mock.Anything, mock.Anything)
}

func (s *QuizServiceSuite) TestGenerateCards_GeneratorErrorStoresNothing() {
	s.gen.On("Quiz", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewParseError("not json", nil))

	_, err := s.svc.GenerateCards(context.Background(), upload("notes.txt", "notes"), nil)

	s.True(errors.HasCode(err, errors.ErrCodeParse))
	s.repo.AssertNotCalled(s.T(), "AppendCards", mock.Anything, mock.Anything)
}

func (s *QuizServiceSuite) TestGenerateCards_StoreFailure() {
	s.gen.On("Quiz", mock.Anything, mock.Anything, mock.Anything).Return([]models.NewCard{{Question: "q"}}, nil)
	s.repo.On("AppendCards", mock.Anything, mock.Anything).Return(nil, errors.NewIOError("save", nil))

	_, err := s.svc.GenerateCards(context.Background(), upload("notes.txt", "notes"), nil)

	s.True(errors.HasCode(err, errors.ErrCodeIO))
}

func TestQuizServiceSuite(t *testing.T) {
	suite.Run(t, new(QuizServiceSuite))
}
