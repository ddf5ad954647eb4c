package testutil

import "sync"

// Sink records every document rendered into it. Safe for concurrent use.
type Sink struct {
	mu   sync.Mutex
	docs []string
	Err  error
}

func (s *Sink) Render(doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.docs = append(s.docs, doc)
	return nil
}

// Count is the number of successful renders.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Last returns the most recent document, or "".
func (s *Sink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs) == 0 {
		return ""
	}
	return s.docs[len(s.docs)-1]
}
