package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/", s.handleIndex)
		r.Get("/generate", s.handleGeneratePage)
		r.Post("/generate", s.handleGenerate)

		r.Get("/review", s.handleReview)
		r.Post("/review/select", s.handleSelectOption)
		r.Post("/review/eliminate", s.handleEliminateOption)
		r.Post("/review/submit", s.handleSubmitAnswer)
		r.Post("/review/next", s.handleNextCard)

		r.Get("/cards", s.handleCards)
		r.Post("/cards/{id}/delete", s.handleDeleteCard)
		r.Post("/cards/delete", s.handleDeleteCards)
		r.Post("/cards/delete-all", s.handleDeleteAllCards)

		r.Get("/summary", s.handleSummaryPage)
		r.Post("/summary", s.handleBuildSummary)
		r.Get("/summary/download", s.handleDownloadSummary)

		r.Get("/stats", s.handleStats)
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/review")
}
