// Package engine implements the falling-block board: the tetromino catalog,
// collision checks, the active piece lifecycle and row clearing.
//
// The engine is a plain state machine with no goroutines, timers or locks.
// Adapters drive it from a single goroutine: a tick source calls Tick, an
// input source calls Handle, and Start (re)starts a game. Presentation
// layers observe it through a Sink.
package engine

import (
	"math/rand"
	"time"
)

// Status is the session state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Command is a player input.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandRotate
)

// String returns the wire name of the command.
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "left"
	case CommandMoveRight:
		return "right"
	case CommandSoftDrop:
		return "down"
	case CommandRotate:
		return "rotate"
	default:
		return "none"
	}
}

// ParseCommand resolves a wire name ("left", "right", "down", "rotate").
func ParseCommand(s string) (Command, bool) {
	switch s {
	case "left":
		return CommandMoveLeft, true
	case "right":
		return CommandMoveRight, true
	case "down":
		return CommandSoftDrop, true
	case "rotate":
		return CommandRotate, true
	default:
		return CommandNone, false
	}
}

// Picker chooses the kind of the next spawned piece.
type Picker func() Kind

// Engine owns the grid, the active piece, score and session status.
type Engine struct {
	grid      Grid
	piece     Piece
	hasPiece  bool
	status    Status
	score     int
	highScore int
	rows      int
	pieces    int

	rng  *rand.Rand
	pick Picker
	sink Sink

	// frame is the composed view last pushed to the sink.
	frame       Grid
	scoreDirty  bool
	statusDirty bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the presentation sink.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithSeed makes piece selection deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPicker overrides random piece selection.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		e.pick = p
	}
}

// WithHighScore seeds the high score, e.g. from persisted results.
func WithHighScore(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.highScore = n
		}
	}
}

// New creates an idle engine. Call Start to begin a game.
func New(opts ...Option) *Engine {
	e := &Engine{sink: NopSink{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Start resets the grid, score and counters and spawns the first piece.
// The high score is kept. Safe to call at any time and any number of times.
func (e *Engine) Start() {
	e.grid.Reset()
	e.hasPiece = false
	e.score = 0
	e.rows = 0
	e.pieces = 0
	e.setStatus(StatusRunning)
	e.scoreDirty = true
	e.spawn()
	e.flush()
}

// Tick runs one gravity step. Returns false when no game is running.
func (e *Engine) Tick() bool {
	if e.status != StatusRunning {
		return false
	}
	e.descend()
	e.flush()
	return true
}

// Handle applies a player command. Returns true if the board changed.
// Commands are ignored unless a game is running.
func (e *Engine) Handle(cmd Command) bool {
	switch cmd {
	case CommandMoveLeft:
		return e.MoveLeft()
	case CommandMoveRight:
		return e.MoveRight()
	case CommandSoftDrop:
		return e.SoftDrop()
	case CommandRotate:
		return e.Rotate()
	default:
		return false
	}
}

// MoveLeft shifts the active piece one column left if nothing blocks it.
func (e *Engine) MoveLeft() bool {
	return e.shift(0, -1)
}

// MoveRight shifts the active piece one column right if nothing blocks it.
func (e *Engine) MoveRight() bool {
	return e.shift(0, 1)
}

// SoftDrop moves the piece down one row, locking it when it cannot move.
func (e *Engine) SoftDrop() bool {
	return e.Tick()
}

// Rotate turns the active piece clockwise. A blocked rotation is rejected
// with no change to rotation or position.
func (e *Engine) Rotate() bool {
	if !e.active() {
		return false
	}
	next := e.piece.Rotated()
	if !e.grid.Fits(next) {
		return false
	}
	e.piece = next
	e.flush()
	return true
}

func (e *Engine) shift(dRow, dCol int) bool {
	if !e.active() {
		return false
	}
	if !e.grid.CanShift(e.piece, dRow, dCol) {
		return false
	}
	e.piece = e.piece.Shifted(dRow, dCol)
	e.flush()
	return true
}

func (e *Engine) active() bool {
	return e.status == StatusRunning && e.hasPiece
}

// descend moves the piece down one row or locks it in place.
func (e *Engine) descend() {
	if !e.hasPiece {
		return
	}
	if e.grid.CanShift(e.piece, 1, 0) {
		e.piece = e.piece.Shifted(1, 0)
		return
	}
	e.lock()
}

// lock settles the active piece, clears rows and spawns the next piece.
func (e *Engine) lock() {
	for _, idx := range e.piece.Indices() {
		e.grid.Occupy(idx, e.piece.Kind)
	}
	e.hasPiece = false
	e.pieces++

	if n := e.grid.ClearCompleteRows(); n > 0 {
		e.award(n)
	}
	e.spawn()
}

func (e *Engine) award(rows int) {
	e.rows += rows
	for i := 0; i < rows; i++ {
		e.score += RowReward
		if e.score > e.highScore {
			e.highScore = e.score
		}
	}
	e.scoreDirty = true
}

// spawn places a new piece at the top, ending the game if it collides.
func (e *Engine) spawn() {
	p := spawnPiece(e.nextKind())
	if !e.grid.Fits(p) {
		e.hasPiece = false
		e.setStatus(StatusGameOver)
		return
	}
	e.piece = p
	e.hasPiece = true
}

func (e *Engine) nextKind() Kind {
	if e.pick != nil {
		if k := e.pick(); k.Valid() {
			return k
		}
	}
	return Kind(e.rng.Intn(kindCount)) + KindI
}

func (e *Engine) setStatus(s Status) {
	if e.status == s {
		return
	}
	e.status = s
	e.statusDirty = true
}

// flush pushes the composed view diff, then score, then status to the sink.
func (e *Engine) flush() {
	view := e.View()
	var changes []CellChange
	for i := range view {
		if view[i] != e.frame[i] {
			changes = append(changes, CellChange{Index: i, Kind: view[i]})
		}
	}
	e.frame = view
	if len(changes) > 0 {
		e.sink.CellsChanged(changes)
	}
	if e.scoreDirty {
		e.scoreDirty = false
		e.sink.ScoreChanged(e.score, e.highScore)
	}
	if e.statusDirty {
		e.statusDirty = false
		e.sink.StatusChanged(e.status)
	}
}

// View returns the settled grid with the active piece drawn in.
func (e *Engine) View() Grid {
	view := e.grid
	if e.hasPiece {
		for _, idx := range e.piece.Indices() {
			if ValidIndex(idx) {
				view[idx] = e.piece.Kind
			}
		}
	}
	return view
}

// Grid returns a copy of the settled cells.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Piece returns the active piece and whether one exists.
func (e *Engine) Piece() (Piece, bool) {
	return e.piece, e.hasPiece
}

// Status returns the session status.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score seen by this engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// RowsCleared returns the rows cleared in the current game.
func (e *Engine) RowsCleared() int {
	return e.rows
}

// PiecesLocked returns the pieces locked in the current game.
func (e *Engine) PiecesLocked() int {
	return e.pieces
}
