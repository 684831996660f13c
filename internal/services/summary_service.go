package services

import (
	"context"
	"strings"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/extract"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/summary"
)

// OutlineGenerator produces a topic outline from lecture text.
type OutlineGenerator interface {
	Outline(ctx context.Context, lecture, exam string) (models.Outline, error)
}

// SummaryService builds the integrated summary tables
type SummaryService interface {
	BuildOutline(ctx context.Context, lectures []Upload, exam *Upload) (models.Outline, error)
	RenderDocument(ctx context.Context, outline models.Outline) ([]byte, error)
}

type summaryService struct {
	generator OutlineGenerator
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(generator OutlineGenerator) SummaryService {
	return &summaryService{generator: generator}
}

func (s *summaryService) BuildOutline(ctx context.Context, lectures []Upload, exam *Upload) (models.Outline, error) {
	log := logger.FromContext(ctx)

	if len(lectures) == 0 {
		return nil, errors.NewValidationError("lectures", "at least one lecture file is required")
	}
	texts := make([]string, 0, len(lectures))
	for _, u := range lectures {
		if err := checkUpload("lectures", u); err != nil {
			return nil, err
		}
		if text := extract.Text(ctx, u.Filename, u.Body); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil, errors.NewValidationError("lectures", "no text could be extracted")
	}
	lecture := strings.Join(texts, "\n\n")
	examText := optionalText(ctx, exam)
	log.Info("building outline: lectures=%d, lecture_chars=%d, exam_chars=%d",
		len(texts), len([]rune(lecture)), len([]rune(examText)))

	outline, err := s.generator.Outline(ctx, lecture, examText)
	if err != nil {
		log.Warn("outline generation failed: %v", err)
		return nil, err
	}
	log.Info("outline built: topics=%d", len(outline))
	return outline, nil
}

func (s *summaryService) RenderDocument(ctx context.Context, outline models.Outline) ([]byte, error) {
	log := logger.FromContext(ctx)
	if len(outline) == 0 {
		return nil, errors.NewNotFoundError("summary", "current session")
	}
	data, err := summary.Render(outline)
	if err != nil {
		log.Error("failed to render summary document: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("rendered summary document: bytes=%d", len(data))
	return data, nil
}
