package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/session"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	log = log.WithError(appErr)
	if appErr.Status >= 500 {
		log.Error("server error")
	} else if appErr.Status >= 400 {
		log.Warn("client error")
	} else {
		log.Debug("request error")
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.Status)
		body := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if appErr.Detail != "" {
			body["detail"] = appErr.Detail
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"error": body})
		return
	}

	http.Error(w, appErr.Message, appErr.Status)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// failure is the user-facing text for an action that failed.
type failure struct {
	// parse and empty replace the generic text for model output problems.
	parse string
	empty string
}

var (
	quizFailure = failure{
		parse: "AI가 올바른 형식(JSON)으로 문제를 만들지 못했습니다. 다시 시도해 주세요.",
		empty: "형식 오류: AI가 문제를 생성하지 못하고 빈 배열을 반환했습니다. 정리본 내용을 조금 더 추가해 보세요.",
	}
	summaryFailure = failure{
		parse: "AI가 올바른 형식(JSON)으로 표를 만들지 못했습니다. 다시 시도해 주세요.",
		empty: "형식 오류: AI가 표를 만들지 못하고 빈 배열을 반환했습니다. 강의자료 내용을 확인해 주세요.",
	}
)

// flashError reports a failed page action on the session. Client mistakes
// become warnings; everything else is an error.
func flashError(r *http.Request, err error, f failure) {
	log := logger.FromContext(r.Context())
	sess := sessionFromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}
	log = log.WithError(appErr).WithField("path", r.URL.Path)
	if appErr.Status >= 500 {
		log.Error("action failed")
	} else {
		log.Warn("action rejected")
	}
	if sess == nil {
		return
	}

	msg := session.Flash{Level: session.FlashError, Message: "오류가 발생했습니다: " + appErr.Message}
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest, errors.ErrCodeConflict, errors.ErrCodeNotFound:
		msg = session.Flash{Level: session.FlashWarning, Message: appErr.Message}
	case errors.ErrCodeParse:
		msg = session.Flash{Level: session.FlashError, Message: f.parse, Detail: appErr.Detail}
	case errors.ErrCodeEmptyResult:
		msg = session.Flash{Level: session.FlashError, Message: f.empty}
	case errors.ErrCodeUnavailable:
		msg = session.Flash{Level: session.FlashError, Message: "AI 기능을 사용할 수 없습니다: " + appErr.Message}
	case errors.ErrCodeIO:
		msg = session.Flash{Level: session.FlashError, Message: "저장에 실패했습니다. 디스크 상태를 확인해 주세요."}
	}
	sess.AddFlash(msg)
}
