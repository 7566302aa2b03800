package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Repository persists run results in a specific output format.
type Repository interface {
	// SaveResults saves the full judged result sequence.
	SaveResults(seq []Result) error

	// SaveSummary saves the aggregate summary.
	SaveSummary(summary *Summary) error
}

// JSONRepository writes results and summary as JSON files under a
// directory, for CI archiving and cross-run diffing.
type JSONRepository struct {
	dir string
}

// NewJSONRepository creates a repository rooted at dir, creating it as
// needed.
func NewJSONRepository(dir string) (*JSONRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &JSONRepository{dir: dir}, nil
}

// SaveResults writes results.json with the ordered result sequence.
func (r *JSONRepository) SaveResults(seq []Result) error {
	return r.writeJSON("results.json", seq)
}

// SaveSummary writes summary.json.
func (r *JSONRepository) SaveSummary(summary *Summary) error {
	return r.writeJSON("summary.json", summary)
}

func (r *JSONRepository) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
