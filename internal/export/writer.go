// Package export serializes finished datasets to disk as JSON.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/domain"
)

// Writer persists datasets into an output directory. Every file is written
// through a temp file and renamed into place, so a crashed run never leaves a
// partially written dataset behind.
type Writer struct {
	dir         string
	indent      bool
	collections bool
	logger      *zap.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithIndent pretty-prints the output.
func WithIndent() Option {
	return func(w *Writer) { w.indent = true }
}

// WithCollections additionally writes each dataset collection to its own
// file alongside the combined dataset.
func WithCollections() Option {
	return func(w *Writer) { w.collections = true }
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string, logger *zap.Logger, opts ...Option) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Writer{dir: dir, logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes the dataset under a per-run subdirectory and returns that
// directory's path.
func (w *Writer) Write(ds *domain.Dataset) (string, error) {
	runDir := filepath.Join(w.dir, ds.RunID.String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.writeFile(runDir, "dataset.json", ds); err != nil {
		return "", err
	}

	if w.collections {
		parts := map[string]any{
			"orders.json":     ds.Orders,
			"deliveries.json": ds.Deliveries,
			"invoices.json":   ds.Invoices,
			"parties.json":    ds.Parties,
			"flow_edges.json": ds.FlowEdges,
			"warnings.json":   ds.Warnings,
		}
		if len(ds.Traces) > 0 {
			parts["traces.json"] = ds.Traces
		}
		if len(ds.Variants) > 0 {
			parts["variants.json"] = ds.Variants
		}
		for name, payload := range parts {
			if err := w.writeFile(runDir, name, payload); err != nil {
				return "", err
			}
		}
	}

	w.logger.Info("dataset exported",
		zap.String("run_id", ds.RunID.String()),
		zap.String("dir", runDir))
	return runDir, nil
}

func (w *Writer) writeFile(dir, name string, payload any) error {
	tempFile, err := os.CreateTemp(dir, name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tempPath := tempFile.Name()

	encoder := json.NewEncoder(tempFile)
	if w.indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(payload); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	finalPath := filepath.Join(dir, name)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize %s: %w", name, err)
	}
	return nil
}
