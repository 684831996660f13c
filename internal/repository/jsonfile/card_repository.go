// Package jsonfile stores quiz cards as an indented JSON array in one file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/flashcard"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

type cardRepository struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// Option configures the card repository.
type Option func(*cardRepository)

// WithClock sets the clock used for the initial review date of new cards.
func WithClock(now func() time.Time) Option {
	return func(r *cardRepository) {
		r.now = now
	}
}

// NewCardRepository creates a CardRepository backed by the file at path.
// All cycles in the process are serialized.
func NewCardRepository(path string, opts ...Option) repository.CardRepository {
	r := &cardRepository{path: path, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *cardRepository) LoadAll(ctx context.Context) []models.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *cardRepository) SaveAll(ctx context.Context, cards []models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, cards)
}

func (r *cardRepository) AppendCard(ctx context.Context, card models.NewCard) (models.Card, error) {
	created, err := r.AppendCards(ctx, []models.NewCard{card})
	if err != nil {
		return models.Card{}, err
	}
	return created[0], nil
}

func (r *cardRepository) AppendCards(ctx context.Context, cards []models.NewCard) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	r.mu.Lock()
	defer r.mu.Unlock()

	today := flashcard.FormatDate(r.now())
	created := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		created = append(created, models.Card{
			ID:           uuid.NewString(),
			Question:     c.Question,
			Options:      append([]string(nil), c.Options...),
			CorrectIndex: c.CorrectIndex,
			Explanation:  c.Explanation,
			Interval:     1,
			NextReview:   today,
		})
	}

	all := append(r.load(ctx), created...)
	if err := r.save(ctx, all); err != nil {
		return nil, err
	}
	log.Info("appended %d cards, %d total", len(created), len(all))
	return created, nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DeleteMany(ctx, []string{id})
	return err
}

func (r *cardRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	cards := r.load(ctx)
	kept := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	removed := len(cards) - len(kept)
	if removed == 0 {
		log.Debug("delete matched no cards: ids=%v", ids)
		return 0, nil
	}
	if err := r.save(ctx, kept); err != nil {
		return 0, err
	}
	log.Info("deleted %d cards, %d left", removed, len(kept))
	return removed, nil
}

func (r *cardRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	logger.FromContext(ctx).WithPrefix("card_repo").Info("deleting all cards")
	return r.save(ctx, nil)
}

func (r *cardRepository) UpdateSchedule(ctx context.Context, id string, outcome models.Outcome, today time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	r.mu.Lock()
	defer r.mu.Unlock()

	cards := r.load(ctx)
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		updated := flashcard.UpdateSchedule(cards[i], outcome, today)
		cards[i] = updated
		if err := r.save(ctx, cards); err != nil {
			return nil, err
		}
		log.Debug("rescheduled card: id=%s, outcome=%s, interval=%d, next_review=%s",
			id, outcome, updated.Interval, updated.NextReview)
		return &updated, nil
	}
	return nil, errors.NewNotFoundError("card", id)
}

func (r *cardRepository) Due(ctx context.Context, today time.Time) []models.Card {
	return flashcard.FilterDue(r.LoadAll(ctx), today)
}

// record mirrors a stored card. Options stays raw so that records without an
// options array can be told apart from records with an empty one.
type record struct {
	ID           string          `json:"id"`
	Question     string          `json:"question"`
	Options      json.RawMessage `json:"options"`
	CorrectIndex int             `json:"correct_index"`
	Explanation  string          `json:"explanation"`
	Interval     int             `json:"interval"`
	NextReview   string          `json:"next_review"`
}

// legacyIDSpace namespaces the ids derived for cards stored without one.
var legacyIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:mediquiz:card"))

// legacyID derives an id from a stored record and its position, so a record
// gets the same id on every load until the file is rewritten.
func legacyID(pos int, msg json.RawMessage) string {
	name := append([]byte(strconv.Itoa(pos)+":"), msg...)
	return uuid.NewSHA1(legacyIDSpace, name).String()
}

// load reads the file. It never fails: missing or malformed files read as
// empty and unusable records are dropped. Cards stored without an id get one
// derived from the record, and the file is rewritten to keep it. Callers
// hold r.mu.
func (r *cardRepository) load(ctx context.Context) []models.Card {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			log.Error("failed to read card file %s: %v", r.path, err)
		}
		return []models.Card{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error("card file %s is not a JSON array, treating as empty: %v", r.path, err)
		return []models.Card{}
	}

	cards := make([]models.Card, 0, len(raw))
	assigned := 0
	for i, msg := range raw {
		var rec record
		if err := json.Unmarshal(msg, &rec); err != nil {
			log.Warn("dropping card record %d: %v", i, err)
			continue
		}
		opts := bytes.TrimSpace(rec.Options)
		if len(opts) == 0 || opts[0] != '[' {
			log.Warn("dropping card record %d: options missing or not a list", i)
			continue
		}
		var options []string
		if err := json.Unmarshal(opts, &options); err != nil {
			log.Warn("dropping card record %d: options: %v", i, err)
			continue
		}
		if rec.CorrectIndex < 0 || rec.CorrectIndex >= len(options) {
			log.Warn("dropping card record %d: correct_index %d out of range for %d options",
				i, rec.CorrectIndex, len(options))
			continue
		}

		c := models.Card{
			ID:           rec.ID,
			Question:     rec.Question,
			Options:      options,
			CorrectIndex: rec.CorrectIndex,
			Explanation:  rec.Explanation,
			Interval:     rec.Interval,
			NextReview:   rec.NextReview,
		}
		if c.ID == "" {
			c.ID = legacyID(i, msg)
			assigned++
		}
		if c.Interval < 1 {
			c.Interval = 1
		}
		cards = append(cards, c)
	}

	if assigned > 0 {
		log.Info("assigned ids to %d stored cards", assigned)
		if err := r.save(ctx, cards); err != nil {
			log.WithError(err).Warn("failed to persist assigned card ids")
		}
	}
	return cards
}

// save replaces the file atomically. Callers hold r.mu.
func (r *cardRepository) save(ctx context.Context, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	if cards == nil {
		cards = []models.Card{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cards); err != nil {
		log.Error("failed to encode cards: %v", err)
		return errors.NewIOError("encode", err)
	}

	if err := renameio.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		log.Error("failed to write card file %s: %v", r.path, err)
		return errors.NewIOError("save", err)
	}
	log.Debug("saved %d cards to %s", len(cards), r.path)
	return nil
}
