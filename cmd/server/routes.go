package main

import (
	"github.com/matryer/way"
)

func (s *server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/health", s.handleHealth())
	s.router.HandleFunc("GET", "/api/leaderboard", s.handleLeaderboard())
	s.router.HandleFunc("GET", "/ws", s.handleWebSocket())
}
