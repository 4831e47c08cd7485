package engine

// Snapshot captures the complete engine state for rendering, replay and
// determinism checks.
type Snapshot struct {
	View      Grid // settled cells plus the active piece
	Settled   Grid
	Piece     Piece
	HasPiece  bool
	Status    Status
	Score     int
	HighScore int
	Rows      int
	Pieces    int
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		View:      e.View(),
		Settled:   e.grid,
		Piece:     e.piece,
		HasPiece:  e.hasPiece,
		Status:    e.status,
		Score:     e.score,
		HighScore: e.highScore,
		Rows:      e.rows,
		Pieces:    e.pieces,
	}
}
