package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/session"
)

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	sess := sessionFromContext(r.Context())

	view := s.Controller.Current(r.Context(), sess.Review)
	if view.Done {
		log.Debug("no cards due for review")
	}

	s.render(w, r, "pages/review.html", pageData{
		"view": view,
	})
}

// optionForm reads the card id and option index posted by the review page.
func optionForm(r *http.Request) (string, int, error) {
	cardID := r.FormValue("card_id")
	if cardID == "" {
		return "", 0, errors.NewBadRequestError("card_id is required")
	}
	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		return "", 0, errors.NewBadRequestError("invalid option")
	}
	return cardID, option, nil
}

func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	cardID, option, err := optionForm(r)
	if err == nil {
		_, err = s.Controller.Select(r.Context(), sess.Review, cardID, option)
	}
	if err != nil {
		flashError(r, err, failure{})
	}
	redirect(w, r, "/review")
}

func (s *Server) handleEliminateOption(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	cardID, option, err := optionForm(r)
	if err == nil {
		_, err = s.Controller.ToggleEliminate(r.Context(), sess.Review, cardID, option)
	}
	if err != nil {
		flashError(r, err, failure{})
	}
	redirect(w, r, "/review")
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	sess := sessionFromContext(r.Context())

	cardID := r.FormValue("card_id")
	view, err := s.Controller.Submit(r.Context(), sess.Review, cardID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeValidation) {
			flash(r, session.FlashWarning, "답을 선택해주세요!")
		} else {
			flashError(r, err, failure{})
		}
		redirect(w, r, "/review")
		return
	}

	if view.Outcome == models.Correct {
		flash(r, session.FlashSuccess, fmt.Sprintf("🎉 정답! %d일 뒤에 봅니다.", view.Card.Interval))
	} else {
		flash(r, session.FlashInfo, "🥲 오답... 내일 다시 복습!")
	}

	if _, err := s.Controller.ShowExplanation(r.Context(), sess.Review); err != nil {
		log.Warn("failed to reveal explanation: %v", err)
	}
	redirect(w, r, "/review")
}

func (s *Server) handleNextCard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if _, err := s.Controller.Advance(r.Context(), sess.Review); err != nil {
		flashError(r, err, failure{})
	}
	redirect(w, r, "/review")
}
