package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bandnine/ielts-platform/internal/eventlog"
	"github.com/bandnine/ielts-platform/internal/exam"
	"github.com/bandnine/ielts-platform/internal/scoring"
)

// POST /submissions  { "examId": "...", "studentId": "...", "answers": {...}, "timeSpent": 123 }
func SubmitExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ExamID    string         `json:"examId"`
			StudentID string         `json:"studentId"`
			Answers   map[string]any `json:"answers"`
			TimeSpent int            `json:"timeSpent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if req.ExamID == "" || req.StudentID == "" || req.Answers == nil {
			writeError(w, http.StatusBadRequest, "examId, studentId and answers are required")
			return
		}
		if _, err := store.GetExam(r.Context(), req.ExamID); err != nil {
			if errors.Is(err, exam.ErrExamNotFound) {
				writeError(w, http.StatusNotFound, "exam not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		sub := &exam.Submission{
			ID:          uuid.NewString(),
			ExamID:      req.ExamID,
			StudentID:   req.StudentID,
			Answers:     req.Answers,
			TimeSpent:   req.TimeSpent,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
			Status:      "submitted",
		}
		if err := store.PutSubmission(r.Context(), sub); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"submissionId": sub.ID,
		})
	}
}

// POST /submissions/{submissionID}/score
func ScoreSubmissionHandler(store exam.Store, scorer *scoring.Scorer, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, status, err := scoreOne(r, store, scorer, chi.URLParam(r, "submissionID"))
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
		appendEvent(r, events, eventlog.TypeSubmissionScored, sub.ID, map[string]any{
			"overallBandScore": sub.OverallBandScore,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"submissionId": sub.ID,
			"result":       sub.ScoringResult,
		})
	}
}

// POST /submissions/score-all scores every submission still pending.
func ScoreAllHandler(store exam.Store, scorer *scoring.Scorer, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := store.ListUnscoredSubmissions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scored, failed := 0, 0
		for _, p := range pending {
			sub, _, err := scoreOne(r, store, scorer, p.ID)
			if err != nil {
				failed++
				continue
			}
			scored++
			appendEvent(r, events, eventlog.TypeSubmissionScored, sub.ID, map[string]any{
				"overallBandScore": sub.OverallBandScore,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"scored":  scored,
			"failed":  failed,
		})
	}
}

func scoreOne(r *http.Request, store exam.Store, scorer *scoring.Scorer, id string) (*exam.Submission, int, error) {
	sub, err := store.GetSubmission(r.Context(), id)
	if err != nil {
		if errors.Is(err, exam.ErrSubmissionNotFound) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}
	ex, err := store.GetExam(r.Context(), sub.ExamID)
	if err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}

	res, err := scorer.Score(ex, sub.Answers)
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	sub.ScoringResult = res
	sub.Status = "scored"
	if err := store.PutSubmission(r.Context(), sub); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return sub, http.StatusOK, nil
}

// GET /submissions?studentId=...
func ListSubmissionsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := store.ListSubmissions(r.Context(), r.URL.Query().Get("studentId"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

// GET /submissions/{submissionID}
func GetSubmissionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := store.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
		if err != nil {
			if errors.Is(err, exam.ErrSubmissionNotFound) {
				writeError(w, http.StatusNotFound, "submission not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

// POST /submissions/{submissionID}/sections/{section}/band  { "band": 6.5 }
//
// A human grader bands a manual-review section (writing); the overall band
// is recomputed with the new section included.
func ApplyManualBandHandler(store exam.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Band float64 `json:"band"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		sub, err := store.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
		if err != nil {
			if errors.Is(err, exam.ErrSubmissionNotFound) {
				writeError(w, http.StatusNotFound, "submission not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sub.ScoringResult == nil {
			writeError(w, http.StatusConflict, "submission has not been scored yet")
			return
		}
		section := exam.Section(chi.URLParam(r, "section"))
		if err := scoring.ApplyManualBand(sub.ScoringResult, section, req.Band); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := store.PutSubmission(r.Context(), sub); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		appendEvent(r, events, eventlog.TypeManualBandApplied, sub.ID, map[string]any{
			"section": section, "band": req.Band,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"overallBandScore": sub.OverallBandScore,
			"sectionScores":    sub.SectionScores,
		})
	}
}
