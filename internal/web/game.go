package web

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/gravity"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	errClientGone    = errors.New("web: client gone")
	errSessionClosed = errors.New("web: session closed")
)

// game is the event loop of one connection. It owns the engine; nothing
// else touches it.
type game struct {
	sess     *Session
	eng      *engine.Engine
	timer    gravity.Timer
	schedule *gravity.Schedule
	store    *storage.Store
	logger   *log.Logger

	startedAt time.Time
	saved     bool
}

func newGame(sess *Session, cfg config.Config, store *storage.Store, logger *log.Logger, opts ...engine.Option) *game {
	high := 0
	if store != nil {
		if h, err := store.HighScore(); err == nil {
			high = h
		} else {
			logger.Warn("could not load high score", "error", err)
		}
	}

	opts = append([]engine.Option{
		engine.WithSink(sess),
		engine.WithSeed(time.Now().UnixNano()),
		engine.WithHighScore(high),
	}, opts...)

	return &game{
		sess:     sess,
		eng:      engine.New(opts...),
		schedule: gravity.NewSchedule(cfg.Gravity, cfg.Difficulty),
		store:    store,
		logger:   logger,
	}
}

// greet sends the hello frame plus the idle score and status.
func (g *game) greet() {
	g.sess.Send(helloMessage(g.sess))
	g.sess.Send(scoreMessage(g.eng.Score(), g.eng.HighScore()))
	g.sess.Send(statusMessage(g.eng.Status()))
}

// run processes commands and gravity until the client leaves, the session
// is closed or ctx is cancelled.
func (g *game) run(ctx context.Context, commands <-chan string) error {
	defer g.timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.sess.Done():
			return errSessionClosed
		case typ, ok := <-commands:
			if !ok {
				return errClientGone
			}
			g.handle(typ)
		case <-g.timer.C():
			g.tick()
		}
		g.resync()
	}
}

// handle applies one client message. Unknown types are ignored.
func (g *game) handle(typ string) {
	if typ == TypeStart {
		g.start()
		return
	}
	cmd, ok := engine.ParseCommand(typ)
	if !ok {
		g.logger.Debug("ignoring message", "session", g.sess.ID(), "type", typ)
		return
	}
	g.eng.Handle(cmd)
	g.afterStep()
}

func (g *game) start() {
	g.eng.Start()
	g.startedAt = time.Now()
	g.saved = false
	g.timer.Reset(g.interval())
}

func (g *game) tick() {
	g.eng.Tick()
	g.afterStep()
}

// afterStep retunes gravity to the current difficulty, or stops it and
// records the score once the game is over.
func (g *game) afterStep() {
	switch g.eng.Status() {
	case engine.StatusRunning:
		g.timer.Adjust(g.interval())
	case engine.StatusGameOver:
		g.timer.Stop()
		g.saveScore()
	}
}

func (g *game) interval() time.Duration {
	return g.schedule.Interval(g.eng.Score(), g.eng.PiecesLocked())
}

// resync pushes the whole board after frames were dropped.
func (g *game) resync() {
	if !g.sess.takeDropped() {
		return
	}
	g.sess.Send(fullBoardMessage(g.eng.View()))
	g.sess.Send(scoreMessage(g.eng.Score(), g.eng.HighScore()))
	g.sess.Send(statusMessage(g.eng.Status()))
}

func (g *game) saveScore() {
	if g.saved {
		return
	}
	g.saved = true

	if g.store == nil || g.eng.Score() <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		Player:   g.sess.Player(),
		Score:    g.eng.Score(),
		Rows:     g.eng.RowsCleared(),
		Pieces:   g.eng.PiecesLocked(),
		Duration: time.Since(g.startedAt),
		Source:   "web",
	}
	if _, err := g.store.SaveScore(entry); err != nil {
		g.logger.Warn("could not save score", "session", g.sess.ID(), "error", err)
		return
	}
	g.logger.Info("score saved", "session", g.sess.ID(), "player", entry.Player, "score", entry.Score)
}
