package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const defaultReviewLimit = 50

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, e models.ReviewEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: card_id=%s, correct=%t", e.CardID, e.Correct)

	if e.ReviewedAt.IsZero() {
		e.ReviewedAt = time.Now().UTC()
	}
	query, args, err := sqlBuilder.Insert("review_history").
		Columns("card_id", "question", "correct", "interval_days", "next_review", "reviewed_on", "reviewed_at").
		Values(e.CardID, e.Question, e.Correct, e.Interval, e.NextReview, e.ReviewedOn, e.ReviewedAt).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *reviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: card_id=%s, since=%s, limit=%d", filter.CardID, filter.Since, filter.Limit)

	query := sqlBuilder.Select(
		"id", "card_id", "question", "correct", "interval_days", "next_review", "reviewed_on", "reviewed_at",
	).From("review_history")
	if filter.CardID != "" {
		query = query.Where(squirrel.Eq{"card_id": filter.CardID})
	}
	if filter.Since != "" {
		query = query.Where(squirrel.GtOrEq{"reviewed_on": filter.Since})
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	query = query.OrderBy("reviewed_at DESC", "id DESC").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()
	var entries []models.ReviewEntry
	for rows.Next() {
		var e models.ReviewEntry
		if err := rows.Scan(&e.ID, &e.CardID, &e.Question, &e.Correct, &e.Interval, &e.NextReview, &e.ReviewedOn, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d reviews", len(entries))
	return entries, rows.Err()
}

func (r *reviewRepository) Summary(ctx context.Context, since string) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching review summary: since=%s", since)

	query := sqlBuilder.Select("COUNT(*)", "COALESCE(SUM(correct), 0)").From("review_history")
	if since != "" {
		query = query.Where(squirrel.GtOrEq{"reviewed_on": since})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var stats models.ReviewStats
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&stats.TotalReviews, &stats.Correct); err != nil {
		log.Error("failed to get review summary: %v", err)
		return nil, err
	}
	if stats.TotalReviews > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.TotalReviews) * 100
	}
	return &stats, nil
}

func (r *reviewRepository) Daily(ctx context.Context, since string) ([]models.DailyReviewStat, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching daily review stats: since=%s", since)

	query := sqlBuilder.Select("reviewed_on", "COUNT(*)", "COALESCE(SUM(correct), 0)").
		From("review_history").
		GroupBy("reviewed_on").
		OrderBy("reviewed_on ASC")
	if since != "" {
		query = query.Where(squirrel.GtOrEq{"reviewed_on": since})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query daily review stats: %v", err)
		return nil, err
	}
	defer rows.Close()
	var stats []models.DailyReviewStat
	for rows.Next() {
		var s models.DailyReviewStat
		if err := rows.Scan(&s.Day, &s.Total, &s.Correct); err != nil {
			log.Error("failed to scan daily review row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
