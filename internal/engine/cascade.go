package engine

// RowReward is the score awarded for each cleared row.
const RowReward = 10

// ClearCompleteRows removes every complete row and drops the cells above it.
// Rows are scanned bottom to top; after a clear the same row index is checked
// again because the row above has just moved into it. Returns the number of
// rows removed.
func (g *Grid) ClearCompleteRows() int {
	cleared := 0
	for row := Height - 1; row >= 0; {
		if !g.RowComplete(row) {
			row--
			continue
		}
		g.clearRow(row)
		g.collapseAbove(row)
		cleared++
	}
	return cleared
}

func (g *Grid) clearRow(row int) {
	start := IndexOf(row, 0)
	for i := start; i < start+Width; i++ {
		g.Clear(i)
	}
}

// collapseAbove moves every occupied cell above row down by one. Cells are
// visited from the row just above upward so nothing moves twice.
func (g *Grid) collapseAbove(row int) {
	for i := IndexOf(row, 0) - 1; i >= 0; i-- {
		k := g[i]
		if k == KindNone {
			continue
		}
		g.Occupy(i+Width, k)
		g.Clear(i)
	}
}
