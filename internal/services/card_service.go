package services

import (
	"context"
	"time"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

// CardService handles card management
type CardService interface {
	ListCards(ctx context.Context) []models.Card
	CountDue(ctx context.Context, today time.Time) int
	DeleteCard(ctx context.Context, id string) error
	DeleteCards(ctx context.Context, ids []string) (int, error)
	DeleteAllCards(ctx context.Context) error
}

type cardService struct {
	cards repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) ListCards(ctx context.Context) []models.Card {
	return s.cards.LoadAll(ctx)
}

func (s *cardService) CountDue(ctx context.Context, today time.Time) int {
	return len(s.cards.Due(ctx, today))
}

func (s *cardService) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s", id)

	if id == "" {
		return errors.NewValidationError("id", "is required")
	}
	return s.cards.Delete(ctx, id)
}

func (s *cardService) DeleteCards(ctx context.Context, ids []string) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("deleting cards: count=%d", len(ids))

	if len(ids) == 0 {
		return 0, errors.NewValidationError("ids", "no cards selected")
	}
	return s.cards.DeleteMany(ctx, ids)
}

func (s *cardService) DeleteAllCards(ctx context.Context) error {
	logger.FromContext(ctx).Info("deleting all cards")
	return s.cards.DeleteAll(ctx)
}
