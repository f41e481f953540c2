package mock

import (
	"io"
	"sync"

	"github.com/animus/anima"
)

// Source is a test double for anima.ChunkSource.
// NextFn panics when nil to catch missing setup; CloseFn is nil-safe
// because test code commonly calls defer src.Close().
type Source struct {
	NextFn  func() (anima.RawItem, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Source) Next() (anima.RawItem, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Source) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Script returns a Source that yields the given items in order and then
// the terminal error. A nil terminal means normal exhaustion (io.EOF).
func Script(items []anima.RawItem, terminal error) *Source {
	if terminal == nil {
		terminal = io.EOF
	}
	var mu sync.Mutex
	i := 0
	return &Source{
		NextFn: func() (anima.RawItem, error) {
			mu.Lock()
			defer mu.Unlock()
			if i >= len(items) {
				return anima.RawItem{}, terminal
			}
			item := items[i]
			i++
			return item, nil
		},
	}
}
