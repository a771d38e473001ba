package scan

import (
	"sort"
	"sync"

	"github.com/connscan/connscan/internal/model"
)

// Store accumulates open-port findings from concurrently completing
// probes. Entries are keyed by port, so the no-duplicates invariant
// holds structurally.
type Store struct {
	mu       sync.Mutex
	findings map[int]model.Finding
}

func NewStore() *Store {
	return &Store{findings: make(map[int]model.Finding)}
}

// Add inserts a finding. Safe for concurrent use; re-adding a port
// keeps a single entry.
func (s *Store) Add(f model.Finding) {
	s.mu.Lock()
	s.findings[f.Port] = f
	s.mu.Unlock()
}

// Len returns the current number of findings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.findings)
}

// Snapshot returns the findings sorted ascending by port. Stable only
// after the scheduler's join barrier.
func (s *Store) Snapshot() []model.Finding {
	s.mu.Lock()
	out := make([]model.Finding, 0, len(s.findings))
	for _, f := range s.findings {
		out = append(out, f)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Port < out[j].Port })
	return out
}

// Ports returns just the open port numbers, sorted ascending.
func (s *Store) Ports() []int {
	snap := s.Snapshot()
	out := make([]int, len(snap))
	for i, f := range snap {
		out[i] = f.Port
	}
	return out
}
