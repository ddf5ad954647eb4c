package playground

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsbin/internal/buffer"
	"jsbin/internal/compose"
	"jsbin/internal/refresh"
	"jsbin/internal/sched"
)

type recordSink struct {
	docs []string
	err  error
}

func (r *recordSink) Render(doc string) error {
	if r.err != nil {
		return r.err
	}
	r.docs = append(r.docs, doc)
	return nil
}

func (r *recordSink) shown() string {
	if len(r.docs) == 0 {
		return ""
	}
	return r.docs[len(r.docs)-1]
}

func newSession(t *testing.T, opts Options) (*Session, *recordSink, *sched.Manual) {
	t.Helper()
	clock := sched.NewManual()
	sink := &recordSink{}
	return New(buffer.NewMemoryStore(), sink, clock, opts), sink, clock
}

func TestSession_RunIgnoresAutoToggle(t *testing.T) {
	s, sink, _ := newSession(t, Options{Manual: true})
	require.False(t, s.Auto())
	s.SetHTML("<p>x</p>")
	s.Run()
	require.Len(t, sink.docs, 1)
	assert.Equal(t, compose.Compose("<p>x</p>", "", ""), sink.shown())
	assert.Equal(t, refresh.Updated, s.Status().Status())
}

func TestSession_EditsDebounceIntoOneRender(t *testing.T) {
	s, sink, clock := newSession(t, Options{})
	s.SetHTML("a")
	clock.Advance(100 * time.Millisecond)
	s.SetCSS("b")
	clock.Advance(100 * time.Millisecond)
	s.SetJS("c")
	clock.Advance(refresh.DefaultDebounce - time.Millisecond)
	assert.Empty(t, sink.docs)
	clock.Advance(time.Millisecond)
	require.Len(t, sink.docs, 1)
	assert.Equal(t, compose.Compose("a", "b", "c"), sink.shown())
}

func TestSession_WidgetEditsAlsoTrigger(t *testing.T) {
	s, sink, clock := newSession(t, Options{Debounce: 50 * time.Millisecond})
	s.Store().Editor(buffer.Script).SetValue("x()")
	s.Store().Notify(buffer.Script)
	clock.Advance(50 * time.Millisecond)
	require.Len(t, sink.docs, 1)
	assert.Contains(t, sink.shown(), "x()")
}

func TestSession_StatusRevertsAfterPreviewExpiry(t *testing.T) {
	s, _, clock := newSession(t, Options{})
	s.Run()
	assert.Equal(t, refresh.Updated, s.Status().Status())
	clock.Advance(refresh.PreviewExpiry)
	assert.Equal(t, refresh.Ready, s.Status().Status())
}

func TestSession_Clear(t *testing.T) {
	s, sink, clock := newSession(t, Options{})
	s.Store().Load(buffer.Starter())
	clock.Advance(time.Second)
	before := len(sink.docs)
	s.SetJS("pending()")

	s.Clear()
	clock.Advance(10 * time.Second)

	assert.Equal(t, "", s.GetHTML())
	assert.Equal(t, "", s.GetCSS())
	assert.Equal(t, "", s.GetJS())
	require.Len(t, sink.docs, before+1, "clear renders exactly once")
	assert.Equal(t, compose.Compose("", "", ""), sink.shown())
	assert.Equal(t, refresh.Cleared, s.Status().Status())
}

func TestSession_ClearRendersWithAutoOff(t *testing.T) {
	s, sink, _ := newSession(t, Options{Manual: true})
	s.Clear()
	assert.Len(t, sink.docs, 1)
}

func TestSession_DownloadLeavesPreviewAndBuffers(t *testing.T) {
	s, sink, clock := newSession(t, Options{Manual: true})
	s.SetHTML("<i>1</i>")
	s.Run()
	shown := sink.shown()
	s.SetHTML("<i>2</i>")
	snap := s.Store().Snapshot()

	var out bytes.Buffer
	where, err := s.Download(WriterExporter{W: &out})
	require.NoError(t, err)
	assert.Equal(t, compose.DownloadName, where)
	assert.Equal(t, compose.Compose("<i>2</i>", "", ""), out.String())

	assert.Len(t, sink.docs, 1)
	assert.Equal(t, shown, sink.shown())
	assert.Equal(t, snap, s.Store().Snapshot())
	assert.Equal(t, refresh.Downloaded, s.Status().Status())
	clock.Advance(refresh.DefaultExpiry)
	assert.Equal(t, refresh.Ready, s.Status().Status())
}

func TestSession_RenderFailureKeepsLastDocument(t *testing.T) {
	s, sink, _ := newSession(t, Options{Manual: true})
	s.Run()
	good := s.LastDocument()

	sink.err = errors.New("surface gone")
	s.SetHTML("changed")
	s.Run()
	assert.Equal(t, good, s.LastDocument())
	assert.Equal(t, 1, s.Renders())
	assert.Contains(t, s.Status().Status(), "Render failed")
}

func TestSession_ToggleAuto(t *testing.T) {
	s, sink, clock := newSession(t, Options{})
	assert.False(t, s.ToggleAuto())
	s.SetHTML("x")
	clock.Advance(time.Second)
	assert.Empty(t, sink.docs)
	assert.True(t, s.ToggleAuto())
}

func TestDirExporter_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	exp := DirExporter{Dir: filepath.Join(dir, "out")}

	p1, err := exp.Export("jsbin.html", []byte("one"))
	require.NoError(t, err)
	p2, err := exp.Export("jsbin.html", []byte("two"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "out", "jsbin.html"), p1)
	assert.Equal(t, filepath.Join(dir, "out", "jsbin-1.html"), p2)
	b, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}
