// Package http is the thin request/response glue over the ingestion and
// scoring core. One router serves both the production gateway and the local
// devserver, so the transformation logic itself is never duplicated.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bandnine/ielts-platform/internal/auth"
	"github.com/bandnine/ielts-platform/internal/eventlog"
	"github.com/bandnine/ielts-platform/internal/exam"
	"github.com/bandnine/ielts-platform/internal/scoring"
	"github.com/bandnine/ielts-platform/internal/storage"
)

type Deps struct {
	Store       exam.Store
	Blobs       storage.BlobStore
	Auth        *auth.AuthService
	Scorer      *scoring.Scorer
	Events      *eventlog.Repo // nil disables event logging
	CORSOrigins []string
}

func NewRouter(d Deps) http.Handler {
	if d.Scorer == nil {
		d.Scorer = scoring.NewScorer()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", HealthHandler)
	r.Post("/auth/login", auth.LoginHandler(d.Auth))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		// Admin: exam-content ingestion.
		pr.With(auth.Require("exam:create")).
			Post("/exams/upload-zip", UploadZipHandler(d.Store, d.Blobs, d.Events))
		pr.With(auth.Require("exam:create")).
			Post("/exams/upload-json", UploadJSONHandler(d.Store, d.Events))

		pr.With(auth.Require("exam:view")).
			Get("/exams", ListExamsHandler(d.Store))
		pr.With(auth.Require("exam:view")).
			Get("/exams/{examID}", GetExamHandler(d.Store))

		// Student flow.
		pr.With(auth.Require("submission:create")).
			Post("/submissions", SubmitExamHandler(d.Store))
		pr.With(auth.RequireAny("submission:view-own", "submission:view-all")).
			Get("/submissions", ListSubmissionsHandler(d.Store))
		pr.With(auth.RequireAny("submission:view-own", "submission:view-all")).
			Get("/submissions/{submissionID}", GetSubmissionHandler(d.Store))

		// Admin: scoring.
		pr.With(auth.Require("submission:score")).
			Post("/submissions/{submissionID}/score", ScoreSubmissionHandler(d.Store, d.Scorer, d.Events))
		pr.With(auth.Require("submission:score")).
			Post("/submissions/score-all", ScoreAllHandler(d.Store, d.Scorer, d.Events))
		pr.With(auth.Require("submission:score")).
			Post("/submissions/{submissionID}/sections/{section}/band", ApplyManualBandHandler(d.Store, d.Events))

		if d.Blobs != nil {
			pr.Route("/assets", func(ar chi.Router) {
				MountAssets(ar, d.Blobs)
			})
		}
	})

	return r
}

func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "ielts-platform",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
