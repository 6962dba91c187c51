package server

import (
	"net/http"
	"sync"

	"smacktalk/internal/config"
	"smacktalk/internal/prompts"

	"gorm.io/gorm"
)

type Server struct {
	store     *Store
	db        *gorm.DB
	ws        *wsHub
	cfg       config.Config
	promptSrc prompts.Source
	eventsMu  sync.Mutex
	events    map[string][]EventRecord
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:     NewStore(),
		db:        conn,
		ws:        newWSHub(),
		cfg:       cfg,
		promptSrc: prompts.FromDB(conn),
		events:    make(map[string][]EventRecord),
	}
}

// WithPromptSource swaps the prompt corpus; tests inject a fake here.
func (s *Server) WithPromptSource(src prompts.Source) *Server {
	s.promptSrc = src
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("POST /api/games/join", s.handleJoinGame)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomLookup)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	return mux
}
