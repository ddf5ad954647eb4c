package preview

import (
	"sync"

	"github.com/google/uuid"
)

// Update is one rendered document as pushed to viewers.
type Update struct {
	Version uint64 `json:"version"`
	Doc     string `json:"doc"`
}

// Surface is the loopback render surface. It keeps only the latest
// document; each Render swaps it in whole and pushes it to every open
// preview page, which loads it into a fresh sandboxed frame.
type Surface struct {
	mu      sync.RWMutex
	cur     Update
	viewers map[string]chan Update
	metrics *metrics
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		viewers: map[string]chan Update{},
		metrics: newMetrics(),
	}
}

// Render replaces the displayed document. The last call wins.
func (s *Surface) Render(doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Update{Version: s.cur.Version + 1, Doc: doc}
	for _, ch := range s.viewers {
		offer(ch, s.cur)
	}
	s.metrics.renders.Inc()
	return nil
}

// Current returns the displayed document and its version.
func (s *Surface) Current() Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Viewers counts open preview pages.
func (s *Surface) Viewers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewers)
}

// Subscribe registers a viewer. The channel holds at most one pending
// update; a slow viewer skips straight to the newest document. The current
// document, if any, is queued immediately.
func (s *Surface) Subscribe() (string, <-chan Update, func()) {
	id := uuid.NewString()
	ch := make(chan Update, 1)

	s.mu.Lock()
	s.viewers[id] = ch
	if s.cur.Version > 0 {
		offer(ch, s.cur)
	}
	s.metrics.viewers.Set(float64(len(s.viewers)))
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.viewers, id)
			s.metrics.viewers.Set(float64(len(s.viewers)))
			s.mu.Unlock()
		})
	}
	return id, ch, cancel
}

// offer replaces any queued update with u.
func offer(ch chan Update, u Update) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- u:
	default:
	}
}
