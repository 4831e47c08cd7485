package engine

// CellChange describes one visible cell after a handler ran. Kind is
// KindNone when the block marker should be removed.
type CellChange struct {
	Index int
	Kind  Kind
}

// Sink receives presentation updates from an Engine. Each engine handler
// emits at most one call of each method, after all mutation is done, in the
// order cells, score, status.
type Sink interface {
	CellsChanged(changes []CellChange)
	ScoreChanged(score, highScore int)
	StatusChanged(status Status)
}

// NopSink discards all updates.
type NopSink struct{}

func (NopSink) CellsChanged([]CellChange) {}
func (NopSink) ScoreChanged(int, int)     {}
func (NopSink) StatusChanged(Status)      {}
