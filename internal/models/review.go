package models

import "time"

// ReviewEntry records one submitted answer.
type ReviewEntry struct {
	ID         int64     `json:"id"`
	CardID     string    `json:"card_id"`
	Question   string    `json:"question"`
	Correct    bool      `json:"correct"`
	Interval   int       `json:"interval"`
	NextReview string    `json:"next_review"`
	ReviewedOn string    `json:"reviewed_on"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ReviewStats aggregates review history.
type ReviewStats struct {
	TotalReviews int     `json:"total_reviews"`
	Correct      int     `json:"correct"`
	Accuracy     float64 `json:"accuracy"`
	CardsTotal   int     `json:"cards_total"`
	CardsDue     int     `json:"cards_due"`
}

// DailyReviewStat is the per-day review count.
type DailyReviewStat struct {
	Day     string `json:"day"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

// ReviewFilter narrows review history queries.
type ReviewFilter struct {
	CardID string
	Since  string // YYYY-MM-DD, inclusive
	Limit  int
}
