package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/broadcaster"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/common/config"
)

// ============================================================
// Room Broadcaster Service
// ============================================================

// The broadcaster is its own binary on plain net/http: the realtime
// channel needs a websocket upgrade, which the fiber app does not carry.

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "5050"
	}

	hub := broadcaster.NewHub()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("GET /api/rooms/{id}/items", hub.HandleRoomItems)
	mux.HandleFunc("GET /health/live", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		// No write timeout: websocket connections stay open indefinitely.
	}

	log.Printf("Starting Room Broadcaster on %s (env: %s)", srv.Addr, cfg.Environment)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
