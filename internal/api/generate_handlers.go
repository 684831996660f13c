package api

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/session"
)

func (s *Server) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "pages/generate.html", pageData{
		"question_count": s.QuestionCount,
		"max_upload_mb":  s.MaxUploadMB,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.parseUploads(w, r); err != nil {
		flashError(r, err, quizFailure)
		redirect(w, r, "/generate")
		return
	}
	defer r.MultipartForm.RemoveAll()

	notes, closeNotes := uploads(r.MultipartForm, "notes")
	defer closeNotes()
	if len(notes) == 0 {
		flash(r, session.FlashWarning, "정리본 파일을 업로드해주세요.")
		redirect(w, r, "/generate")
		return
	}
	exams, closeExams := uploads(r.MultipartForm, "exam")
	defer closeExams()
	var exam *services.Upload
	if len(exams) > 0 {
		exam = &exams[0]
	}

	created, err := s.QuizService.GenerateCards(r.Context(), notes[0], exam)
	if err != nil {
		flashError(r, err, quizFailure)
		redirect(w, r, "/generate")
		return
	}

	log.Info("generated %d cards", len(created))
	flash(r, session.FlashSuccess, fmt.Sprintf("✅ %d개 문제가 생성되어 저장되었습니다!", len(created)))
	redirect(w, r, "/generate")
}

// parseUploads reads a multipart form within the configured size limit.
func (s *Server) parseUploads(w http.ResponseWriter, r *http.Request) error {
	limit := int64(s.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 50 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("업로드를 읽을 수 없습니다 (최대 %dMB): %v", limit>>20, err))
	}
	return nil
}

// uploads opens every file posted under field. Files that cannot be opened
// are skipped. The returned func closes the opened files.
func uploads(form *multipart.Form, field string) ([]services.Upload, func()) {
	if form == nil {
		return nil, func() {}
	}
	var (
		out    []services.Upload
		opened []multipart.File
	)
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		opened = append(opened, f)
		out = append(out, services.Upload{Filename: fh.Filename, Body: f})
	}
	return out, func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
}
