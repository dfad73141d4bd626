package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shazow/wifiseek/wifi"
)

// File writes the matched networks to Path in a single write.
type File struct {
	Path string
	// Status, if set, announces the saved file.
	Status *Status
	Logger *slog.Logger
}

// Emit implements poll.Sink.
func (f *File) Emit(ctx context.Context, q wifi.Query, networks []wifi.Network) error {
	data, err := marshal(networks)
	if err != nil {
		return fmt.Errorf("failed to encode networks: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}

	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("saved networks", "path", f.Path, "networks", len(networks), "query", q.String())
	if f.Status != nil {
		f.Status.Saved(f.Path)
	}
	return nil
}
