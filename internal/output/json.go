package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"creator-store-check/internal/model"
)

// ReportPath returns <dir>/test_results_<unix seconds><ext>.
func ReportPath(dir string, at time.Time, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("test_results_%d%s", at.Unix(), ext))
}

func WriteJSON(path string, r *model.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
