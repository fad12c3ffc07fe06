package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"rocketsim/game"
)

// FileSink appends each row as a line to <dir>/<set>.txt
type FileSink struct {
	mu  sync.Mutex
	dir string
}

// NewFileSink creates a sink writing under dir
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

// Path returns the file a dataset is written to
func (s *FileSink) Path(set string) string {
	return filepath.Join(s.dir, set+".txt")
}

// Append writes r to the end of its dataset file, creating it if needed
func (s *FileSink) Append(r game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	f, err := os.OpenFile(s.Path(r.Set), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", r.Set, err)
	}
	if _, err := f.WriteString(r.Line() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write dataset %s: %w", r.Set, err)
	}
	return f.Close()
}

// Close is a no-op; files are closed after every row
func (s *FileSink) Close() error { return nil }
