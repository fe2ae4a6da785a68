package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// The CSV dialect is intentionally minimal: fields are joined and split on
// commas with no quoting, so a value containing a comma does not survive a
// round trip.

// WriteCSV writes the header line followed by one line per row.
func (g *Grid) WriteCSV(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(g.columns, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range g.rows {
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadCSV skips the header line and writes line i of the body into row i,
// appending rows as needed. Fields past ColumnCount are dropped; cells not
// covered by a short line keep their current value. The grid is left
// untouched when reading fails.
func (g *Grid) ReadCSV(r io.Reader) error {
	lines, err := parseCSV(r, len(g.columns))
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.applyLocked(lines)
	return nil
}

// parseCSV returns the body lines of r split into at most cols fields.
// Lines have no length limit.
func parseCSV(r io.Reader, cols int) ([][]string, error) {
	br := bufio.NewReader(r)

	var lines [][]string
	header := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			return lines, nil
		}

		if header {
			header = false
		} else {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			fields := strings.SplitN(line, ",", cols+1)
			if len(fields) > cols {
				fields = fields[:cols]
			}
			lines = append(lines, fields)
		}

		if err == io.EOF {
			return lines, nil
		}
	}
}

func (g *Grid) applyLocked(lines [][]string) {
	for row, fields := range lines {
		for row >= len(g.rows) {
			g.appendRowLocked()
		}
		copy(g.rows[row], fields)
	}
}

// ExportCSV writes the grid to path, truncating any existing file.
func (g *Grid) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := g.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ImportCSV reads path into the grid without clearing it first.
func (g *Grid) ImportCSV(path string) error {
	return g.importFile(path, false)
}

// LoadCSV replaces the grid contents with the rows in path. The grid is
// only replaced once the whole file has been read.
func (g *Grid) LoadCSV(path string) error {
	return g.importFile(path, true)
}

func (g *Grid) importFile(path string, replace bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	lines, err := parseCSV(f, len(g.columns))
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if replace {
		g.rows = nil
	}
	g.applyLocked(lines)
	return nil
}
