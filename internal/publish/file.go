package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
)

// FileSink writes each report as an indented JSON file into a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("results directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Path returns where r is written.
func (f *FileSink) Path(r *instance.Report) string {
	return filepath.Join(f.dir, reportName(r))
}

// Publish writes r through a temp file so readers never see a partial report.
func (f *FileSink) Publish(_ context.Context, r *instance.Report) error {
	tmp, err := os.CreateTemp(f.dir, ".report-*")
	if err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := instance.WriteReport(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("file sink: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path(r)); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	return nil
}

func (f *FileSink) Close() error { return nil }
