package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsProd []string
	CORSOriginsDev  []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeDev
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:            mode,
		HTTPAddr:        addr,
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		BlobBasePath:    envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:       envOr("ADMIN_USER", "admin"),
		AdminPassHash:   os.Getenv("ADMIN_PASS_HASH"),
		CORSOriginsProd: csvOr("CORS_ORIGINS_PROD", "https://app.bandnine.example.com"),
		CORSOriginsDev:  csvOr("CORS_ORIGINS_DEV", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
