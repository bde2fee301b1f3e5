package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"creator-store-check/internal/model"
)

const indexFile = "index.json"

type IndexEntry struct {
	RunID        string        `json:"runId"`
	TimestampUTC string        `json:"timestampUtc"`
	StoreDir     string        `json:"storeDir,omitempty"`
	Passed       int           `json:"passed"`
	Total        int           `json:"total"`
	SuccessRate  float64       `json:"successRate"`
	Verdict      model.Verdict `json:"verdict"`
	Failed       []string      `json:"failed,omitempty"`
	JSONFile     string        `json:"jsonFile"`
	MDFile       string        `json:"mdFile,omitempty"`
}

type Index struct {
	Entries []IndexEntry `json:"entries"`
}

// Latest returns the most recent entry.
func (idx Index) Latest() (IndexEntry, bool) {
	if len(idx.Entries) == 0 {
		return IndexEntry{}, false
	}
	return idx.Entries[len(idx.Entries)-1], true
}

type Trend struct {
	Previous int
	Current  int
	Delta    int
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// Options locate the history index and the report files of the run.
type Options struct {
	Dir        string
	MaxEntries int
	JSONPath   string
	MDPath     string
}

// Record appends the run to the index and returns the trend of the passed
// check count against the previous run.
func Record(opts Options, r *model.Report) (Trend, error) {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return Trend{}, err
	}

	idx, err := Load(opts.Dir)
	if err != nil {
		return Trend{}, err
	}

	prev := -1
	if last, ok := idx.Latest(); ok {
		prev = last.Passed
	}

	entry := IndexEntry{
		RunID:        r.RunID,
		TimestampUTC: r.StartedAt.UTC().Format(time.RFC3339),
		StoreDir:     r.StoreDir,
		Passed:       r.Summary.Passed,
		Total:        r.Summary.Total,
		SuccessRate:  r.Summary.SuccessRate,
		Verdict:      r.Summary.Verdict,
		JSONFile:     relTo(opts.Dir, opts.JSONPath),
		MDFile:       relTo(opts.Dir, opts.MDPath),
	}
	for _, c := range r.Checks {
		if !c.Passed {
			entry.Failed = append(entry.Failed, c.ID)
		}
	}

	idx.Entries = append(idx.Entries, entry)
	if opts.MaxEntries > 0 && len(idx.Entries) > opts.MaxEntries {
		idx.Entries = idx.Entries[len(idx.Entries)-opts.MaxEntries:]
	}

	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return Trend{}, err
	}
	if err := os.WriteFile(filepath.Join(opts.Dir, indexFile), raw, 0644); err != nil {
		return Trend{}, err
	}

	tr := Trend{Previous: prev, Current: r.Summary.Passed, Delta: 0, Label: "FIRST_RUN"}

	if prev >= 0 {
		tr.Delta = tr.Current - tr.Previous
		if tr.Delta > 0 {
			tr.Label = "IMPROVING"
		} else if tr.Delta < 0 {
			tr.Label = "DECLINING"
		} else {
			tr.Label = "SAME"
		}
	}

	return tr, nil
}

// Load reads the index in dir. A missing index is an empty one.
func Load(dir string) (Index, error) {
	var idx Index
	raw, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return idx, err
	}
	if len(raw) == 0 {
		return idx, nil
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return Index{}, fmt.Errorf("history index %s: %w", dir, err)
	}
	return idx, nil
}

// relTo makes path relative to the history dir so the index survives moving
// the output directory.
func relTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

// Resolve turns an index file reference back into a path.
func Resolve(dir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, filepath.FromSlash(ref))
}
