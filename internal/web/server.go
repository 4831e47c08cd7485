package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/logging"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
	maxPlayerName  = 32
	defaultLimit   = 10
	maxLimit       = 100
)

// Server is the HTTP front end: websocket play, score listing and health.
type Server struct {
	cfg      config.Config
	store    *storage.Store
	logger   *log.Logger
	registry *Registry
	upgrader websocket.Upgrader
	http     *http.Server

	// engineOpts are appended to every new engine. Tests use it to pin
	// the piece sequence.
	engineOpts []engine.Option
}

// NewServer creates a web server. The store may be nil; the caller owns it.
func NewServer(cfg config.Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		registry: NewRegistry(cfg.Web.MaxSessions),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /scores", s.handleScores)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Registry exposes the live sessions.
func (s *Server) Registry() *Registry {
	return s.registry
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Web.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting web server", "address", s.cfg.Web.Address)

	errCh := make(chan error, 1)
	go func() {
		err := s.http.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	return s.Shutdown()
}

// Shutdown ends every game and stops the listener.
func (s *Server) Shutdown() error {
	s.registry.CloseAll()
	if s.http == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := NewSession(uuid.NewString(), playerName(r), defaultQueueSize)
	if err := s.registry.Add(sess); err != nil {
		s.logger.Warn("rejecting connection", "remote", r.RemoteAddr, "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.registry.Remove(sess.ID())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	logger := s.logger.With("session", sess.ID(), "player", sess.Player())
	logger.Info("session started", "remote", r.RemoteAddr)
	started := time.Now()

	err = s.serve(r.Context(), conn, sess, logger)
	logger.Info("session ended", "duration", time.Since(started).Round(time.Second), "reason", err)
}

// serve runs the reader, game loop and writer of one connection. The first
// one to stop brings the others down.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, sess *Session, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	commands := make(chan string)

	gm := newGame(sess, s.cfg, s.store, logger, s.engineOpts...)
	gm.greet()

	g.Go(func() error {
		defer close(commands)
		return readLoop(gctx, conn, commands)
	})
	g.Go(func() error {
		return gm.run(gctx, commands)
	})
	g.Go(func() error {
		return writeLoop(gctx, conn, sess)
	})
	g.Go(func() error {
		<-gctx.Done()
		sess.Close()
		return conn.Close()
	})

	err := g.Wait()
	if errors.Is(err, errClientGone) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

// readLoop decodes client frames and forwards their type. Malformed frames
// are skipped.
func readLoop(ctx context.Context, conn *websocket.Conn, commands chan<- string) error {
	conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		select {
		case commands <- strings.ToLower(strings.TrimSpace(msg.Type)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeLoop drains the session queue onto the connection.
func writeLoop(ctx context.Context, conn *websocket.Conn, sess *Session) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-sess.Outbound():
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("web: write: %w", err)
			}
		}
	}
}

// playerName takes ?player= when given, else makes one up.
func playerName(r *http.Request) string {
	name := strings.TrimSpace(r.URL.Query().Get("player"))
	if name == "" {
		return petname.Generate(2, "-")
	}
	if runes := []rune(name); len(runes) > maxPlayerName {
		name = string(runes[:maxPlayerName])
	}
	return name
}

// scoreJSON is the wire form of a stored game.
type scoreJSON struct {
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Rows       int       `json:"rows"`
	Pieces     int       `json:"pieces"`
	DurationMs int64     `json:"durationMs"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	out := []scoreJSON{}
	if s.store != nil {
		entries, err := s.store.TopScores(limit)
		if err != nil {
			s.logger.Error("listing scores", "error", err)
			http.Error(w, "could not load scores", http.StatusInternalServerError)
			return
		}
		for _, e := range entries {
			out = append(out, scoreJSON{
				Player:     e.Player,
				Score:      e.Score,
				Rows:       e.Rows,
				Pieces:     e.Pieces,
				DurationMs: e.Duration.Milliseconds(),
				Source:     e.Source,
				CreatedAt:  e.CreatedAt,
			})
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}
