package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/ecliptor/intruder-escape-server/internal/config"
	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/handler"
	"github.com/ecliptor/intruder-escape-server/internal/score"
	"github.com/ecliptor/intruder-escape-server/internal/session"
	"github.com/ecliptor/intruder-escape-server/internal/store"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type server struct {
	router *way.Router
	hub    *ws.Hub
	store  store.ScoreStore
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	st, err := newScoreStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open score store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	hub := ws.NewHub()
	sm := session.NewManager(hub, st, game.DefaultConfig(), time.Duration(cfg.TickMS)*time.Millisecond)
	router := handler.NewRouter(sm)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	s := &server{hub: hub, store: st}
	s.routes()

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, s.router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newScoreStore picks the backing store: PostgreSQL when DATABASE_URL
// is set, the local score file otherwise.
func newScoreStore(ctx context.Context, cfg *config.Config) (store.ScoreStore, error) {
	if cfg.DatabaseURL != "" {
		slog.Info("using postgres score store")
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	slog.Info("using file score store", "path", cfg.ScoreFile)
	return store.NewFileStore(cfg.ScoreFile)
}

func (s *server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

type leaderboardResponse struct {
	Entries []*score.Entry `json:"entries"`
}

func (s *server) handleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 5
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		if limit < 1 {
			limit = 1
		}
		if limit > 100 {
			limit = 100
		}

		entries, err := s.store.Top(r.Context(), limit)
		if err != nil {
			slog.Error("failed to load leaderboard", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []*score.Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(leaderboardResponse{Entries: entries})
	}
}

func (s *server) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(s.hub.NextID(), s.hub, conn)
		s.hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
