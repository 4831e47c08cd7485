package engine

// Board dimensions. The playfield size is fixed.
const (
	Width     = 10
	Height    = 15
	CellCount = Width * Height
)

// Position is a (row, column) grid coordinate. Piece anchors may sit outside
// the grid (for example column -1 for a vertical I against the left wall) as
// long as every occupied cell is inside.
type Position struct {
	Row, Col int
}

// Index returns the flat grid index of p.
func (p Position) Index() int {
	return IndexOf(p.Row, p.Col)
}

// Add returns p moved by an offset.
func (p Position) Add(o Offset) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// RowOf returns the row of a flat index.
func RowOf(index int) int {
	return index / Width
}

// ColOf returns the column of a flat index.
func ColOf(index int) int {
	return index % Width
}

// IndexOf returns the flat index of (row, col).
func IndexOf(row, col int) int {
	return row*Width + col
}

// InBounds reports whether (row, col) lies on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// ValidIndex reports whether index addresses a grid cell.
func ValidIndex(index int) bool {
	return index >= 0 && index < CellCount
}

// Grid holds the settled cells. A cell is occupied iff its kind is not
// KindNone.
type Grid [CellCount]Kind

// IsOccupied reports whether the cell at index holds a block. Indices off
// the grid report true so callers treat them as blocked.
func (g Grid) IsOccupied(index int) bool {
	if !ValidIndex(index) {
		return true
	}
	return g[index] != KindNone
}

// KindAt returns the tag of the cell at index, KindNone when empty or off
// the grid.
func (g Grid) KindAt(index int) Kind {
	if !ValidIndex(index) {
		return KindNone
	}
	return g[index]
}

// Occupy marks a cell as settled with the given kind. No validation.
func (g *Grid) Occupy(index int, k Kind) {
	g[index] = k
}

// Clear empties a cell. No validation.
func (g *Grid) Clear(index int) {
	g[index] = KindNone
}

// Reset empties every cell.
func (g *Grid) Reset() {
	*g = Grid{}
}

// Occupied returns the number of occupied cells.
func (g Grid) Occupied() int {
	n := 0
	for _, k := range g {
		if k != KindNone {
			n++
		}
	}
	return n
}

// WouldCollide reports whether placing shape at anchor would put any cell
// off the grid or onto an occupied cell.
func (g Grid) WouldCollide(anchor Position, shape Shape) bool {
	for _, o := range shape {
		cell := anchor.Add(o)
		if !InBounds(cell.Row, cell.Col) {
			return true
		}
		if g.IsOccupied(cell.Index()) {
			return true
		}
	}
	return false
}

// Fits reports whether p can occupy its cells.
func (g Grid) Fits(p Piece) bool {
	return !g.WouldCollide(p.Anchor, p.Shape())
}

// CanShift reports whether every cell of p can move by (dRow, dCol). A move
// is allowed only if each target cell is free and stayed in its column lane;
// a flat-index shift that wraps to the opposite edge changes the column by
// more than dCol and is rejected.
func (g Grid) CanShift(p Piece, dRow, dCol int) bool {
	for _, idx := range p.Indices() {
		target := idx + dRow*Width + dCol
		if g.IsOccupied(target) || !keepsColumn(idx, target, dCol) {
			return false
		}
	}
	return true
}

// keepsColumn reports whether moving from one flat index to another changed
// the column by exactly dCol. With the column delta fixed the row delta is
// fixed too.
func keepsColumn(from, to, dCol int) bool {
	return ColOf(to)-ColOf(from) == dCol
}

// RowComplete reports whether every cell of row is occupied.
func (g Grid) RowComplete(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	start := IndexOf(row, 0)
	for i := start; i < start+Width; i++ {
		if g[i] == KindNone {
			return false
		}
	}
	return true
}
