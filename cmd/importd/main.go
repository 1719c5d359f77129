// importd serves a document root and loads import trees on request,
// streaming live progress over a websocket.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	htmlimports "github.com/AshleyScirra/html-imports-polyfill"
	"github.com/AshleyScirra/html-imports-polyfill/internal/config"
	"github.com/AshleyScirra/html-imports-polyfill/internal/server"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type progressFrame struct {
	URL    string `json:"url"`
	Loaded int64  `json:"loaded"`
	Total  int64  `json:"total"`
	Done   bool   `json:"done"`
}

type loadSummary struct {
	URL      string   `json:"url"`
	Loaded   int64    `json:"loaded"`
	Total    int64    `json:"total"`
	Failures []string `json:"failures,omitempty"`
}

func main() {
	root := flag.String("root", ".", "document root to serve")
	port := flag.String("port", "", "listen address (overrides env)")
	flag.Parse()

	cfg := config.Load()
	cfg.Backend = "file"
	cfg.Root = *root
	if *port != "" {
		cfg.Port = *port
	}

	fetcher, err := cfg.Fetcher()
	if err != nil {
		log.Fatal(err)
	}
	loader, err := htmlimports.New(htmlimports.Config{
		Fetcher: fetcher,
		MainURL: "/index.html",
	})
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(*root)))
	mux.HandleFunc("/load", func(w http.ResponseWriter, r *http.Request) {
		handleLoad(w, r, loader)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWS(w, r, loader)
	})

	srv := server.New(cfg.Port, mux)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// handleLoad expands an import tree synchronously and reports a summary.
func handleLoad(w http.ResponseWriter, r *http.Request, loader *htmlimports.Loader) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	var progress htmlimports.Progress
	res, err := loader.AddImport(r.Context(), url, false, &progress).Wait(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	loaded, total := progress.Snapshot()
	summary := loadSummary{URL: url, Loaded: loaded, Total: total}
	for _, f := range res.Failures {
		summary.Failures = append(summary.Failures, f.URL)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Printf("encode summary: %v", err)
	}
}

// handleWS expands an import tree while pushing progress frames until the
// tree settles.
func handleWS(w http.ResponseWriter, r *http.Request, loader *htmlimports.Loader) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url query parameter is required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	var progress htmlimports.Progress
	res := loader.AddImport(r.Context(), url, false, &progress)

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			loaded, total := progress.Snapshot()
			if err := conn.WriteJSON(progressFrame{URL: url, Loaded: loaded, Total: total}); err != nil {
				return
			}
		case <-res.Done():
			loaded, total := progress.Snapshot()
			_ = conn.WriteJSON(progressFrame{URL: url, Loaded: loaded, Total: total, Done: true})
			return
		}
	}
}
