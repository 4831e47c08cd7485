package engine

// SpawnColumn is the anchor column of a freshly spawned piece.
const SpawnColumn = Width/2 - 1

// Piece is the active, falling tetromino.
type Piece struct {
	Kind     Kind
	Rotation int
	Anchor   Position
}

// spawnPiece places k in rotation 0 at the top of the grid.
func spawnPiece(k Kind) Piece {
	return Piece{
		Kind:     k,
		Rotation: 0,
		Anchor:   Position{Row: 0, Col: SpawnColumn},
	}
}

// Shape returns the offsets of the piece's current rotation.
func (p Piece) Shape() Shape {
	return catalog[p.Kind].Rotation(p.Rotation)
}

// Cells returns the absolute positions the piece occupies.
func (p Piece) Cells() [4]Position {
	var cells [4]Position
	for i, o := range p.Shape() {
		cells[i] = p.Anchor.Add(o)
	}
	return cells
}

// Indices returns the flat grid indices the piece occupies.
func (p Piece) Indices() [4]int {
	var idx [4]int
	for i, c := range p.Cells() {
		idx[i] = c.Index()
	}
	return idx
}

// Shifted returns a copy of p moved by (dRow, dCol).
func (p Piece) Shifted(dRow, dCol int) Piece {
	p.Anchor.Row += dRow
	p.Anchor.Col += dCol
	return p
}

// Rotated returns a copy of p turned one step clockwise in place.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % RotationStates
	return p
}
