package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/session"
)

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cards := s.CardService.ListCards(ctx)
	logger.FromContext(ctx).Debug("listing %d cards", len(cards))

	s.render(w, r, "pages/cards.html", pageData{
		"cards": cards,
		"due":   s.CardService.CountDue(ctx, s.now()),
	})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		flashError(r, err, failure{})
	} else {
		flash(r, session.FlashSuccess, "문제를 삭제했습니다.")
	}
	redirect(w, r, "/cards")
}

func (s *Server) handleDeleteCards(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(r, err, failure{})
		redirect(w, r, "/cards")
		return
	}

	removed, err := s.CardService.DeleteCards(r.Context(), r.PostForm["ids"])
	if err != nil {
		flashError(r, err, failure{})
	} else {
		flash(r, session.FlashSuccess, fmt.Sprintf("%d개 문제를 삭제했습니다.", removed))
	}
	redirect(w, r, "/cards")
}

func (s *Server) handleDeleteAllCards(w http.ResponseWriter, r *http.Request) {
	if err := s.CardService.DeleteAllCards(r.Context()); err != nil {
		flashError(r, err, failure{})
	} else {
		flash(r, session.FlashSuccess, "모든 문제를 삭제했습니다.")
	}
	redirect(w, r, "/cards")
}
