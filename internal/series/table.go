package series

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mtcorr/mtcorr/internal/correlator"
)

var unitPattern = regexp.MustCompile(`\[.+?\]`)

// Table is a recorded timeseries: one labelled column per channel, one row
// per sampling step. This is the whitespace-delimited stats format written
// by MD drivers, e.g.
//
//	# Step | Time [fs] | T [K] | Epot/N [eV]
//	0 0.5 300.0 -3.21
type Table struct {
	Labels []string
	Units  []string

	rows  [][]float64
	index map[string]int
}

// ReadFile parses a stats table from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("series: parse %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a stats table: a #-prefixed header of |-separated column
// labels with optional [unit] suffixes, followed by numeric rows.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty input")
	}
	header := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(header, "#") {
		return nil, fmt.Errorf("missing # header line, got %q", header)
	}
	header = strings.TrimPrefix(header, "#")

	t := &Table{index: make(map[string]int)}
	for _, field := range strings.Split(header, "|") {
		unit := ""
		if m := unitPattern.FindString(field); m != "" {
			unit = m
		}
		label := strings.TrimSpace(unitPattern.ReplaceAllString(field, ""))
		if label == "" {
			return nil, fmt.Errorf("empty column label in header %q", header)
		}
		if _, dup := t.index[label]; dup {
			return nil, fmt.Errorf("duplicate column label %q", label)
		}
		t.index[label] = len(t.Labels)
		t.Labels = append(t.Labels, label)
		t.Units = append(t.Units, unit)
	}

	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != len(t.Labels) {
			return nil, fmt.Errorf("line %d: %d values for %d columns", line, len(fields), len(t.Labels))
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %w", line, t.Labels[i], err)
			}
			row[i] = v
		}
		t.rows = append(t.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Rows returns the number of sampling steps in the table.
func (t *Table) Rows() int { return len(t.rows) }

// Columns returns the number of channels.
func (t *Table) Columns() int { return len(t.Labels) }

// HasColumn reports whether a channel with the given label exists.
func (t *Table) HasColumn(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Column returns the full timeseries of one channel.
func (t *Table) Column(label string) ([]float64, error) {
	i, ok := t.index[label]
	if !ok {
		return nil, fmt.Errorf("series: no column %q", label)
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Frame returns row i as a sampling frame for the correlation layer.
func (t *Table) Frame(i int) correlator.Frame {
	f := make(correlator.Frame, len(t.Labels))
	for c, label := range t.Labels {
		f[label] = t.rows[i][c]
	}
	return f
}
