// devserver runs the same handlers as the gateway against an in-memory
// store, for local development without a database. Parsing and scoring come
// from the same internal packages; only the wiring differs.
package main

import (
	"log"
	"net/http"

	api "github.com/bandnine/ielts-platform/internal/api/http"
	"github.com/bandnine/ielts-platform/internal/auth"
	"github.com/bandnine/ielts-platform/internal/config"
	"github.com/bandnine/ielts-platform/internal/exam"
	"github.com/bandnine/ielts-platform/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash, true)

	handler := api.NewRouter(api.Deps{
		Store:       exam.NewInMemoryStore(),
		Blobs:       bs,
		Auth:        authSvc,
		CORSOrigins: cfg.CORSOriginsDev,
	})

	log.Printf("devserver listening on %s (in-memory store)", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Fatal(err)
	}
}
