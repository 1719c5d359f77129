package main

import (
	"context"
	"flag"
	"log"
	"time"

	htmlimports "github.com/AshleyScirra/html-imports-polyfill"
	"github.com/AshleyScirra/html-imports-polyfill/internal/config"
)

func main() {
	url := flag.String("url", "", "root import URL (or path for the file backend)")
	backend := flag.String("backend", "", "fetch backend: http, file or s3 (overrides env)")
	root := flag.String("root", "", "document root for the file backend (overrides env)")
	cache := flag.Int("cache", -1, "LRU fetch cache entries, 0 disables (overrides env)")
	flag.Parse()
	if *url == "" {
		log.Fatal("--url is required")
	}

	cfg := config.Load()
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *cache >= 0 {
		cfg.CacheEntries = *cache
	}

	fetcher, err := cfg.Fetcher()
	if err != nil {
		log.Fatal(err)
	}
	loader, err := htmlimports.New(htmlimports.Config{
		Fetcher: fetcher,
		MainURL: *url,
	})
	if err != nil {
		log.Fatal(err)
	}

	var progress htmlimports.Progress
	res := loader.AddImport(context.Background(), *url, false, &progress)

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			loaded, total := progress.Snapshot()
			log.Printf("progress %d/%d", loaded, total)
		case <-res.Done():
			r, err := res.Value()
			if err != nil {
				log.Fatal(err)
			}
			loaded, total := progress.Snapshot()
			log.Printf("done %d/%d", loaded, total)
			if r.Document == nil {
				log.Fatalf("root import %s did not load", *url)
			}
			for _, f := range r.Failures {
				log.Printf("contained failure: %s: %v", f.URL, f.Err)
			}
			log.Printf("loaded import tree rooted at %s (%d contained failures)", r.Document.URL, len(r.Failures))
			return
		}
	}
}
