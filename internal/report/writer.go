package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

const fileMode = 0o644

// Writer writes a Report to a fixed path, replacing any previous document.
type Writer struct {
	path string
}

// NewFileWriter creates a Writer targeting path. Parent directories are
// created on write.
func NewFileWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the target path.
func (w *Writer) Path() string {
	return w.path
}

// Write encodes the report and atomically replaces the target file.
func (w *Writer) Write(r *domain.Report) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", domain.ErrPersistenceFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create output file: %w", domain.ErrPersistenceFailed, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close output file: %w", domain.ErrPersistenceFailed, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("%w: failed to set output file mode: %w", domain.ErrPersistenceFailed, err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", domain.ErrPersistenceFailed, w.path, err)
	}
	committed = true
	return nil
}

// Encode writes the report as JSON indented with two spaces. HTML
// characters in titles are kept verbatim.
func Encode(out io.Writer, r *domain.Report) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a previously written report.
func Read(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read report: %w", domain.ErrPersistenceFailed, err)
	}
	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: failed to parse report %s: %w", domain.ErrPersistenceFailed, path, err)
	}
	return &r, nil
}
