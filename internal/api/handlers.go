package api

import (
	"database/sql"
	"html/template"
	"net/http"
	"time"

	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/session"
)

type Server struct {
	CardService    services.CardService
	QuizService    services.QuizService
	SummaryService services.SummaryService
	StatsService   services.StatsService
	Controller     *session.Controller
	Sessions       *session.Registry
	Templates      *template.Template
	// DB is pinged by the readiness check; nil skips the check.
	DB            *sql.DB
	AIEnabled     bool
	QuestionCount int
	MaxUploadMB   int
	// Now is the clock used for due dates and stats; nil means time.Now.
	Now func() time.Time
}

type pageData map[string]any

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if sess := sessionFromContext(r.Context()); sess != nil {
		data["flashes"] = sess.TakeFlashes()
	}
	data["ai_enabled"] = s.AIEnabled
	data["path"] = r.URL.Path

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// flash queues a message on the request's session.
func flash(r *http.Request, level, message string) {
	if sess := sessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(session.Flash{Level: level, Message: message})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
