package report

import (
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Entry is the reported output of one correlation: the correlation values
// and the matching lag times, index aligned.
type Entry struct {
	Value []float64 `yaml:"value"`
	Lags  []float64 `yaml:"lags"`
}

// Correlations is an ordered set of named report entries. Order follows the
// run configuration so reports diff cleanly between runs.
type Correlations struct {
	names   []string
	entries map[string]Entry
}

// Add appends one correlation result. Re-adding a name overwrites its entry
// but keeps its original position.
func (c *Correlations) Add(name string, lags, value []float64) {
	if c.entries == nil {
		c.entries = make(map[string]Entry)
	}
	if _, ok := c.entries[name]; !ok {
		c.names = append(c.names, name)
	}
	c.entries[name] = Entry{Value: value, Lags: lags}
}

// Len returns the number of entries.
func (c *Correlations) Len() int { return len(c.names) }

// Write emits the report as a YAML document keyed by correlation name.
func (c *Correlations) Write(w io.Writer) error {
	doc := make(yaml.MapSlice, 0, len(c.names))
	for _, name := range c.names {
		entry := c.entries[name]
		doc = append(doc, yaml.MapItem{
			Key: name,
			Value: yaml.MapSlice{
				{Key: "value", Value: entry.Value},
				{Key: "lags", Value: entry.Lags},
			},
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, truncating any previous report.
func (c *Correlations) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()
	if err := c.Write(f); err != nil {
		return err
	}
	return f.Close()
}
