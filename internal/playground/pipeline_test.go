package playground_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsbin/internal/buffer"
	"jsbin/internal/playground"
	"jsbin/internal/refresh"
	"jsbin/internal/sandbox"
	"jsbin/internal/sched"
)

// The whole pipeline against a headless page: typing, debouncing, the
// script guard and the status slot.
func TestPipeline_HeadlessPage(t *testing.T) {
	clock := sched.NewManual()
	page := sandbox.New(sandbox.Config{Timeout: time.Second})
	s := playground.New(buffer.NewMemoryStore(), page, clock, playground.Options{})

	s.SetHTML(`<div id="t">hi</div>`)
	s.SetJS(`document.getElementById("t").textContent = "bye"`)
	assert.Equal(t, 0, page.Renders())

	clock.Advance(refresh.DefaultDebounce)
	require.Equal(t, 1, page.Renders())
	assert.Equal(t, "bye", page.Text("#t"))
	assert.Empty(t, page.Errors())
	assert.Equal(t, refresh.Updated, s.Status().Status())

	s.SetJS(`throw new Error("boom")`)
	clock.Advance(refresh.DefaultDebounce)
	require.Equal(t, 2, page.Renders())
	assert.Equal(t, []string{"JS Error: Error: boom"}, page.Errors())
	assert.Equal(t, "hi", page.Text("#t"))

	clock.Advance(refresh.PreviewExpiry)
	assert.Equal(t, refresh.Ready, s.Status().Status())
}

func TestPipeline_ClearRendersEmptyDocument(t *testing.T) {
	clock := sched.NewManual()
	page := sandbox.New(sandbox.Config{})
	store := buffer.NewMemoryStore()
	store.Load(buffer.Starter())
	s := playground.New(store, page, clock, playground.Options{})

	s.Run()
	require.True(t, page.Exists(".card"))

	s.Clear()
	assert.Equal(t, 2, page.Renders())
	assert.False(t, page.Exists(".card"))
	assert.False(t, s.Trigger().Pending())
	assert.Equal(t, refresh.Cleared, s.Status().Status())

	// Cleared persists past every pending expiry check
	clock.Advance(time.Minute)
	assert.Equal(t, refresh.Cleared, s.Status().Status())
	assert.Equal(t, 2, page.Renders())
}
