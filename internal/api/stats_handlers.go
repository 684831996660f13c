package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/mediquiz/internal/logger"
)

const (
	defaultStatsDays = 14
	maxStatsDays     = 365
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	days := defaultStatsDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxStatsDays {
			days = n
		} else {
			log.Debug("ignoring invalid days=%q", v)
		}
	}

	overview, err := s.StatsService.GetOverview(r.Context(), s.now(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/stats.html", pageData{
		"overview": overview,
		"days":     days,
	})
}
