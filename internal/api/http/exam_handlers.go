package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bandnine/ielts-platform/internal/eventlog"
	"github.com/bandnine/ielts-platform/internal/exam"
	"github.com/bandnine/ielts-platform/internal/ingest"
	"github.com/bandnine/ielts-platform/internal/storage"
)

// POST /exams/upload-zip (multipart: file=package.zip, title=...)
func UploadZipHandler(store exam.Store, blobs storage.BlobStore, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		title := r.FormValue("title")
		if title == "" {
			title = "Untitled Exam"
		}

		ex, err := ingest.Parse(data, ingest.FormatZip, title)
		if err != nil {
			writeParseError(w, err)
			return
		}
		ex.ID = newExamID()
		ex.CreatedAt = time.Now().Unix()

		// The parser only extracts asset bytes; uploading them is our job.
		if blobs != nil && ex.Assets != nil {
			uploadAssets(blobs, ex.ID, "images", ex.Assets.Images)
			uploadAssets(blobs, ex.ID, "audio", ex.Assets.Audio)
			uploadAssets(blobs, ex.ID, "css", ex.Assets.CSS)
		}

		if err := store.PutExam(r.Context(), ex); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		appendEvent(r, events, eventlog.TypeExamIngested, ex.ID, map[string]any{
			"format": "zip", "totalQuestions": ex.TotalQuestions,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"examId":         ex.ID,
			"title":          ex.Title,
			"totalQuestions": ex.TotalQuestions,
			"sections":       ex.Sections,
		})
	}
}

// POST /exams/upload-json (multipart: file=exam.json, title=...)
func UploadJSONHandler(store exam.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		ex, err := ingest.Parse(data, ingest.FormatJSON, r.FormValue("title"))
		if err != nil {
			writeParseError(w, err)
			return
		}
		ex.ID = newExamID()
		ex.CreatedAt = time.Now().Unix()

		if err := store.PutExam(r.Context(), ex); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		appendEvent(r, events, eventlog.TypeExamIngested, ex.ID, map[string]any{
			"format": "json", "totalQuestions": ex.TotalQuestions,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"examId":         ex.ID,
			"title":          ex.Title,
			"totalQuestions": ex.TotalQuestions,
			"sections":       ex.Sections,
		})
	}
}

// GET /exams
func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := store.ListExams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// List view: metadata only, no question bodies or answer keys.
		type summary struct {
			ID             string             `json:"id"`
			Title          string             `json:"title"`
			Type           string             `json:"type"`
			Duration       int                `json:"duration,omitempty"`
			TotalQuestions int                `json:"totalQuestions"`
			Sections       []exam.SectionInfo `json:"sections"`
		}
		out := make([]summary, 0, len(exams))
		for _, e := range exams {
			out = append(out, summary{
				ID: e.ID, Title: e.Title, Type: e.Type, Duration: e.Duration,
				TotalQuestions: e.TotalQuestions, Sections: e.Sections,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /exams/{examID}
func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex, err := store.GetExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			if errors.Is(err, exam.ErrExamNotFound) {
				writeError(w, http.StatusNotFound, "exam not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ex)
	}
}

func uploadAssets(blobs storage.BlobStore, examID, kind string, assets []exam.Asset) {
	for i := range assets {
		a := &assets[i]
		if len(a.Data) == 0 {
			continue
		}
		key := fmt.Sprintf("exams/%s/%s/%s", examID, kind, a.Name)
		if _, err := blobs.Put(key, bytes.NewReader(a.Data)); err != nil {
			log.Printf("asset upload %s: %v", key, err)
			continue
		}
		if url, err := blobs.URL(key); err == nil {
			a.URL = url
		}
		a.Data = nil // uploaded; don't persist raw bytes with the exam
	}
}

func appendEvent(r *http.Request, events *eventlog.Repo, typ, key string, data map[string]any) {
	if events == nil {
		return
	}
	payload, _ := json.Marshal(data)
	if err := events.Append(r.Context(), eventlog.Event{Type: typ, Key: key, DataJSON: string(payload)}); err != nil {
		log.Printf("event log append %s %s: %v", typ, key, err)
	}
}

func newExamID() string {
	return "exam-" + time.Now().Format("20060102150405.000000")
}
