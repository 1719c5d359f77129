package config

import (
	"testing"

	"github.com/AshleyScirra/html-imports-polyfill/internal/tester"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	tester.Eq(t, cfg.Backend, "http")
	tester.Eq(t, cfg.Port, ":8080")
	tester.False(t, cfg.Native, "native support defaults off")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTML_IMPORTS_BACKEND", "file")
	t.Setenv("HTML_IMPORTS_ROOT", "/srv/site")
	t.Setenv("HTML_IMPORTS_CACHE_ENTRIES", "64")
	t.Setenv("HTML_IMPORTS_PORT", "9090")
	t.Setenv("HTML_IMPORTS_NATIVE", "true")

	cfg := Load()
	tester.Eq(t, cfg.Backend, "file")
	tester.Eq(t, cfg.Root, "/srv/site")
	tester.Eq(t, cfg.CacheEntries, 64)
	tester.Eq(t, cfg.Port, ":9090")
	tester.True(t, cfg.Native, "native override")
}

func TestFetcherRejectsUnknownBackend(t *testing.T) {
	_, err := Config{Backend: "carrier-pigeon"}.Fetcher()
	tester.Err(t, err)
}

func TestFetcherFileBackend(t *testing.T) {
	cfg := Config{Backend: "file", Root: t.TempDir(), CacheEntries: 8}
	f, err := cfg.Fetcher()
	tester.NoErr(t, err)
	tester.True(t, f != nil, "expected a fetcher")
}
