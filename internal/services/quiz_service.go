package services

import (
	"context"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/extract"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

// QuizGenerator produces new cards from study text.
type QuizGenerator interface {
	Quiz(ctx context.Context, notes, exam string) ([]models.NewCard, error)
}

// QuizService turns uploaded study notes into stored cards
type QuizService interface {
	GenerateCards(ctx context.Context, notes Upload, exam *Upload) ([]models.Card, error)
}

type quizService struct {
	cards     repository.CardRepository
	generator QuizGenerator
}

// NewQuizService creates a new QuizService
func NewQuizService(cards repository.CardRepository, generator QuizGenerator) QuizService {
	return &quizService{cards: cards, generator: generator}
}

func (s *quizService) GenerateCards(ctx context.Context, notes Upload, exam *Upload) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithField("notes", notes.Filename)

	if err := checkUpload("notes", notes); err != nil {
		return nil, err
	}
	notesText := extract.Text(ctx, notes.Filename, notes.Body)
	if notesText == "" {
		return nil, errors.NewValidationError("notes", "no text could be extracted from "+notes.Filename)
	}
	examText := optionalText(ctx, exam)
	log.Info("generating cards: notes_chars=%d, exam_chars=%d", len([]rune(notesText)), len([]rune(examText)))

	generated, err := s.generator.Quiz(ctx, notesText, examText)
	if err != nil {
		log.Warn("card generation failed: %v", err)
		return nil, err
	}

	created, err := s.cards.AppendCards(ctx, generated)
	if err != nil {
		log.Error("failed to store generated cards: %v", err)
		return nil, err
	}
	log.Info("stored %d generated cards", len(created))
	return created, nil
}
