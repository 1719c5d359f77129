// Package config resolves environment-driven settings for the binaries.
// Values come from the process environment, with a .env file loaded first
// when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AshleyScirra/html-imports-polyfill/internal/fetch"
)

type Config struct {
	// Backend selects where documents come from: http, file or s3.
	Backend string

	// Root is the document root for the file backend and importd.
	Root string

	// CacheEntries bounds the LRU fetch cache; 0 disables it.
	CacheEntries int

	// Native marks the host as natively supporting imports.
	Native bool

	// Port is the importd listen address.
	Port string

	S3 fetch.S3Config
}

func Load() Config {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("HTML_IMPORTS_PORT"))
	if port == "" {
		port = ":8080"
	} else if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return Config{
		Backend:      firstNonEmpty(strings.TrimSpace(os.Getenv("HTML_IMPORTS_BACKEND")), "http"),
		Root:         strings.TrimSpace(os.Getenv("HTML_IMPORTS_ROOT")),
		CacheEntries: envInt("HTML_IMPORTS_CACHE_ENTRIES", 0),
		Native:       envBool("HTML_IMPORTS_NATIVE", false),
		Port:         port,
		S3: fetch.S3Config{
			Endpoint:  strings.TrimSpace(os.Getenv("HTML_IMPORTS_S3_ENDPOINT")),
			Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("HTML_IMPORTS_S3_REGION")), "us-east-1"),
			AccessKey: strings.TrimSpace(os.Getenv("HTML_IMPORTS_S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("HTML_IMPORTS_S3_SECRET_KEY")),
			Bucket:    strings.TrimSpace(os.Getenv("HTML_IMPORTS_S3_BUCKET")),
			UseSSL:    envBool("HTML_IMPORTS_S3_USE_SSL", true),
		},
	}
}

// Fetcher builds the configured fetch backend, wrapped in the LRU cache
// when one is configured.
func (c Config) Fetcher() (fetch.Fetcher, error) {
	var (
		f   fetch.Fetcher
		err error
	)
	switch c.Backend {
	case "http":
		f, err = fetch.NewHTTPFetcher()
	case "file":
		f, err = fetch.NewFileFetcher(c.Root)
	case "s3":
		f, err = fetch.NewS3Fetcher(c.S3)
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
	if err != nil {
		return nil, err
	}
	if c.CacheEntries > 0 {
		return fetch.NewCached(f, c.CacheEntries)
	}
	return f, nil
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
