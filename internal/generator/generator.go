// Package generator asks a generative model for quiz questions and summary
// tables and decodes what comes back.
package generator

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
)

// Generator builds prompts, calls the provider and decodes the response.
type Generator struct {
	provider Provider
	limits   Limits
	count    int
	timeout  time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithLimits sets the source text limits.
func WithLimits(l Limits) Option {
	return func(g *Generator) {
		g.limits = l
	}
}

// WithQuestionCount sets how many questions a quiz request asks for.
func WithQuestionCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// New creates a Generator. A nil provider makes every call fail as unavailable.
func New(provider Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		limits:   DefaultLimits,
		count:    5,
		timeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Available reports whether a provider is configured.
func (g *Generator) Available() bool {
	return g.provider != nil
}

// QuestionCount is the number of questions requested per quiz.
func (g *Generator) QuestionCount() int {
	return g.count
}

// Quiz generates questions from study notes, using exam text, if given, as a
// style reference.
func (g *Generator) Quiz(ctx context.Context, notes, exam string) ([]models.NewCard, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, errors.NewValidationError("notes", "no text was extracted")
	}
	raw, err := g.call(ctx, "quiz", QuizPrompt(notes, strings.TrimSpace(exam), g.count, g.limits))
	if err != nil {
		return nil, err
	}
	return DecodeQuiz(ctx, raw)
}

// Outline generates the summary table for lecture text, tagging exam options
// found in it.
func (g *Generator) Outline(ctx context.Context, lecture, exam string) (models.Outline, error) {
	if strings.TrimSpace(lecture) == "" {
		return nil, errors.NewValidationError("lecture", "no text was extracted")
	}
	raw, err := g.call(ctx, "summary", SummaryPrompt(lecture, exam, g.limits))
	if err != nil {
		return nil, err
	}
	return DecodeOutline(ctx, raw)
}

func (g *Generator) call(ctx context.Context, kind, prompt string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("generator").WithField("kind", kind)
	if g.provider == nil {
		return "", errors.NewUnavailableError("AI provider is not configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	log.Info("calling model: prompt_chars=%d", len([]rune(prompt)))
	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		log.Error("model call failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.NewUnavailableError("AI request timed out")
		}
		return "", errors.NewInternalError(err)
	}
	log.Info("model responded in %s: response_chars=%d", time.Since(start).Round(time.Millisecond), len([]rune(raw)))
	log.Debug("raw model response: %s", raw)
	return raw, nil
}
