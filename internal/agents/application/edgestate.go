package application

import "sync"

// EdgeState is the per-item last-observed stock table shared by the
// monitoring and forecasting agents. It lives in process memory only and is
// injected into both agents rather than held as package state, so tests get
// isolated instances and teardown is free.
type EdgeState struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewEdgeState() *EdgeState {
	return &EdgeState{last: make(map[string]int64)}
}

// Last returns the last observed stock for the key and whether the key has
// been observed at all.
func (s *EdgeState) Last(key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.last[key]
	return v, ok
}

func (s *EdgeState) Set(key string, stock int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[key] = stock
}
