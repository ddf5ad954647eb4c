package playground

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsbin/internal/buffer"
	"jsbin/internal/compose"
	"jsbin/internal/refresh"
	"jsbin/internal/sched"
)

type lockedSink struct {
	mu   sync.Mutex
	docs []string
}

func (l *lockedSink) Render(doc string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs = append(l.docs, doc)
	return nil
}

func (l *lockedSink) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.docs)
}

func TestRemote_OverLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := sched.NewLoop()
	go loop.Run(ctx)

	sink := &lockedSink{}
	s := New(buffer.NewMemoryStore(), sink, loop, Options{Debounce: 20 * time.Millisecond})
	r := NewRemote(s, loop.Do)

	require.NoError(t, r.Set(buffer.Markup, `<div id="t">hi</div>`))
	got, err := r.Get(buffer.Markup)
	require.NoError(t, err)
	assert.Equal(t, `<div id="t">hi</div>`, got)

	require.NoError(t, r.Render())
	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, refresh.Updated, st)

	// the auto refresh scheduled by Set lands on the loop too
	assert.Eventually(t, func() bool { return sink.count() == 2 }, 2*time.Second, 5*time.Millisecond)

	var last string
	loop.Do(func() { last = s.LastDocument() })
	assert.Equal(t, compose.Compose(`<div id="t">hi</div>`, "", ""), last)

	cancel()
	time.Sleep(10 * time.Millisecond)
	assert.ErrorIs(t, r.Render(), ErrStopped)
}
