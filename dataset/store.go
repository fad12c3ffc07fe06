package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"

	"rocketsim/game"
)

// datasetObject groups all datasets in the gdata storage; each set is one property
const datasetObject = "datasets"

// Store keeps datasets in the per-user application storage managed by gdata,
// so recorded rows survive on platforms without a writable working directory
type Store struct {
	mu sync.Mutex
	m  *gdata.Manager
}

// NewStore wraps an open gdata manager
func NewStore(m *gdata.Manager) *Store {
	return &Store{m: m}
}

// Append adds r to the end of its dataset
func (s *Store) Append(r game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	if s.m.ObjectPropExists(datasetObject, r.Set) {
		existing, err := s.m.LoadObjectProp(datasetObject, r.Set)
		if err != nil {
			return fmt.Errorf("load dataset %s: %w", r.Set, err)
		}
		data = existing
	}
	data = append(data, r.Line()...)
	data = append(data, '\n')

	if err := s.m.SaveObjectProp(datasetObject, r.Set, data); err != nil {
		return fmt.Errorf("save dataset %s: %w", r.Set, err)
	}
	return nil
}

// Rows returns every stored line of a dataset
func (s *Store) Rows(set string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.m.ObjectPropExists(datasetObject, set) {
		return nil, nil
	}
	data, err := s.m.LoadObjectProp(datasetObject, set)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", set, err)
	}
	var rows []string
	for _, line := range bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n")) {
		if len(line) > 0 {
			rows = append(rows, strings.TrimSpace(string(line)))
		}
	}
	return rows, nil
}

// Close is a no-op; gdata writes every row through
func (s *Store) Close() error { return nil }
