package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PixelFlood/internal/state"
)

// WriteFile saves a snapshot to path, as PDF when the name ends in .pdf and
// as PNG otherwise. The file is swapped in by rename once fully written.
func WriteFile(path string, c *state.Canvas) error {
	write := WritePNG
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		write = WritePDF
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Snapshotter periodically saves the canvas to a file, skipping intervals in
// which nothing was painted.
type Snapshotter struct {
	Path     string
	Interval time.Duration
	Canvas   *state.Canvas

	lastGen uint64
	saved   bool
}

// Run writes snapshots until ctx is done, then writes a final one.
func (s *Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.save()
	for {
		select {
		case <-ctx.Done():
			s.save()
			return
		case <-ticker.C:
			s.save()
		}
	}
}

func (s *Snapshotter) save() {
	gen := s.Canvas.Generation()
	if s.saved && gen == s.lastGen {
		return
	}
	if err := WriteFile(s.Path, s.Canvas); err != nil {
		log.Printf("[EXPORT] Snapshot failed: %v", err)
		return
	}
	s.lastGen, s.saved = gen, true
}

