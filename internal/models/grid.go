package models

import (
	"fmt"
	"sync"
)

// DefaultColumnCount is the number of sample columns shown in the grid.
const DefaultColumnCount = 10

// SeedRow is the row the grid starts with.
var SeedRow = []string{"101.53", "100.87", "98.97", "99.95", "101.50", "102.01", "97.37", "100.01", "99.56", "101.33"}

// Grid is an in-memory table of string cells with fixed column labels.
// Every row holds exactly ColumnCount cells; an empty string means unset.
type Grid struct {
	mu      sync.RWMutex
	columns []string
	rows    [][]string
}

// DefaultColumns returns the labels "x1".."xN".
func DefaultColumns(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("x%d", i+1)
	}
	return labels
}

// NewGrid creates an empty grid. The labels are copied and never change.
func NewGrid(labels []string) *Grid {
	columns := make([]string, len(labels))
	copy(columns, labels)
	return &Grid{columns: columns}
}

// NewSeededGrid creates the startup grid with one row of sample values.
func NewSeededGrid() *Grid {
	g := NewGrid(DefaultColumns(DefaultColumnCount))
	row := g.AppendRow()
	for col, v := range SeedRow {
		g.SetCell(row, col, v)
	}
	return g
}

// ColumnLabels returns a copy of the column labels.
func (g *Grid) ColumnLabels() []string {
	labels := make([]string, len(g.columns))
	copy(labels, g.columns)
	return labels
}

func (g *Grid) ColumnCount() int {
	return len(g.columns)
}

func (g *Grid) RowCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rows)
}

// AppendRow appends a row of empty cells and returns its index.
func (g *Grid) AppendRow() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.appendRowLocked()
}

func (g *Grid) appendRowLocked() int {
	g.rows = append(g.rows, make([]string, len(g.columns)))
	return len(g.rows) - 1
}

// SetCell overwrites a cell. Out-of-range indices panic.
func (g *Grid) SetCell(row, col int, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checkLocked(row, col)
	g.rows[row][col] = value
}

// Cell returns the stored value, or "" if the cell was never set.
// Out-of-range indices panic.
func (g *Grid) Cell(row, col int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.checkLocked(row, col)
	return g.rows[row][col]
}

// Row returns a copy of one row.
func (g *Grid) Row(row int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.checkLocked(row, 0)
	out := make([]string, len(g.rows[row]))
	copy(out, g.rows[row])
	return out
}

// Clear removes all rows and keeps the column labels.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows = nil
}

func (g *Grid) checkLocked(row, col int) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.columns) {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", row, col, len(g.rows), len(g.columns)))
	}
}
