package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/bandnine/ielts-platform/internal/api/http"
	"github.com/bandnine/ielts-platform/internal/auth"
	"github.com/bandnine/ielts-platform/internal/config"
	"github.com/bandnine/ielts-platform/internal/db"
	"github.com/bandnine/ielts-platform/internal/eventlog"
	"github.com/bandnine/ielts-platform/internal/exam"
	"github.com/bandnine/ielts-platform/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := exam.NewSQLStore(dbh)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash, cfg.Mode == config.ModeDev)

	origins := cfg.CORSOriginsProd
	if cfg.Mode == config.ModeDev {
		origins = cfg.CORSOriginsDev
	}

	handler := api.NewRouter(api.Deps{
		Store:       store,
		Blobs:       bs,
		Auth:        authSvc,
		Events:      eventlog.NewRepo(dbh),
		CORSOrigins: origins,
	})

	log.Printf("gateway listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Fatal(err)
	}
}
