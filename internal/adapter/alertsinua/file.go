package alertsinua

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
)

// FileSource replays a saved API response from disk. It decodes exactly like
// Client, which makes it useful for offline rendering and fixtures.
type FileSource struct {
	decoder
	path string
}

// NewFileSource reads payloads of the given source variant from path.
func NewFileSource(path string, source config.Source, logger *slog.Logger, metrics *observability.Metrics) *FileSource {
	return &FileSource{
		decoder: decoder{source: source, logger: logger, metrics: metrics},
		path:    path,
	}
}

// FetchRecords reads and decodes the file. The file is re-read on every call.
func (f *FileSource) FetchRecords(_ context.Context) ([]domain.RawAlertRecord, error) {
	body, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	records, err := f.decode(body)
	if errors.Is(err, domain.ErrDecode) {
		return nil, &domain.FetchError{Op: "file " + f.path, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return records, nil
}
