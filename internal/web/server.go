// Package web serves the game's JSON API, its websocket event stream and the
// static front end.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/results"
	"github.com/cory-johannsen/valouniversaire/internal/storage/jsonfile"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Submitter stores client-submitted result files.
type Submitter interface {
	Submit(fileName string, data json.RawMessage) (jsonfile.SavedFile, error)
}

// Options configures a Server. Sessions and Leaderboard are required.
type Options struct {
	Sessions    *session.Manager
	Leaderboard results.Store
	// Submissions receives POST /api/results bodies; nil disables the endpoint.
	Submissions     Submitter
	LeaderboardSize int
	// StaticDir is served under /static/; empty disables static files.
	StaticDir     string
	AllowedOrigin string
	Clock         tick.Clock
	Logger        *zap.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	sessions    *session.Manager
	leaderboard results.Store
	submissions Submitter
	topN        int
	staticDir   string
	origin      string
	clock       tick.Clock
	logger      *zap.Logger
	schemas     *schemas
	upgrader    websocket.Upgrader
}

// NewServer builds a Server.
//
// Precondition: opts.Sessions and opts.Leaderboard must be non-nil.
// Postcondition: Returns a Server or an error if the request schemas fail to compile.
func NewServer(opts Options) (*Server, error) {
	if opts.Sessions == nil {
		return nil, errors.New("web: sessions are required")
	}
	if opts.Leaderboard == nil {
		return nil, errors.New("web: leaderboard store is required")
	}
	sc, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = results.DefaultLeaderboardSize
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.Clock == nil {
		opts.Clock = tick.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{
		sessions:    opts.Sessions,
		leaderboard: opts.Leaderboard,
		submissions: opts.Submissions,
		topN:        opts.LeaderboardSize,
		staticDir:   opts.StaticDir,
		origin:      opts.AllowedOrigin,
		clock:       opts.Clock,
		logger:      opts.Logger,
		schemas:     sc,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return s.origin == "*" || origin == "" || origin == s.origin
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/state", s.method(http.MethodGet, s.handleState))
	mux.Handle("/api/action", s.method(http.MethodPost, s.handleAction))
	mux.Handle("/api/reset", s.method(http.MethodPost, s.handleReset))
	mux.Handle("/api/scores", s.method(http.MethodGet, s.handleScores))
	mux.Handle("/api/config", s.method(http.MethodGet, s.handleConfig))
	mux.Handle("/api/results", s.method(http.MethodPost, s.handleSubmitResult))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/events", s.handleEvents)

	if s.staticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
	mux.HandleFunc("/", s.handleHome)

	return s.logRequests(s.cors(mux))
}

func (s *Server) method(method string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsHeaders(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", s.origin)
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.sendError(w, "Not found", http.StatusNotFound)
		return
	}
	if s.staticDir != "" {
		index := filepath.Join(s.staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<html><body><h1>Valouniversaire</h1></body></html>"))
}
