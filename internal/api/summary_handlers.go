package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/vytor/mediquiz/internal/docx"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/session"
	"github.com/vytor/mediquiz/internal/summary"
)

func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	outline := sess.Outline()

	s.render(w, r, "pages/summary.html", pageData{
		"title":         summary.Title,
		"tables":        summary.Layout(outline),
		"has_summary":   len(outline) > 0,
		"max_upload_mb": s.MaxUploadMB,
	})
}

func (s *Server) handleBuildSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	sess := sessionFromContext(r.Context())

	if err := s.parseUploads(w, r); err != nil {
		flashError(r, err, summaryFailure)
		redirect(w, r, "/summary")
		return
	}
	defer r.MultipartForm.RemoveAll()

	lectures, closeLectures := uploads(r.MultipartForm, "lectures")
	defer closeLectures()
	if len(lectures) == 0 {
		flash(r, session.FlashWarning, "강의자료를 업로드해주세요.")
		redirect(w, r, "/summary")
		return
	}
	exams, closeExams := uploads(r.MultipartForm, "exam")
	defer closeExams()
	var exam *services.Upload
	if len(exams) > 0 {
		exam = &exams[0]
	}

	outline, err := s.SummaryService.BuildOutline(r.Context(), lectures, exam)
	if err != nil {
		flashError(r, err, summaryFailure)
		redirect(w, r, "/summary")
		return
	}

	sess.SetOutline(outline)
	log.Info("summary built: topics=%d", len(outline))
	flash(r, session.FlashSuccess, "✅ 정리본 생성이 완료되었습니다!")
	redirect(w, r, "/summary")
}

func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	data, err := s.SummaryService.RenderDocument(r.Context(), sess.Outline())
	if err != nil {
		if wantsJSON(r) {
			handleError(w, r, err)
			return
		}
		flashError(r, err, summaryFailure)
		redirect(w, r, "/summary")
		return
	}

	w.Header().Set("Content-Type", docx.MIMEType)
	w.Header().Set("Content-Disposition",
		`attachment; filename="summary.docx"; filename*=UTF-8''`+url.PathEscape(summary.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
