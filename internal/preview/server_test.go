package preview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsbin/internal/buffer"
)

func init() { gin.SetMode(gin.TestMode) }

// fakeConsole renders into the surface directly.
type fakeConsole struct {
	surface *Surface
	store   *buffer.Store
	down    bool
}

func (f *fakeConsole) Render() error {
	if f.down {
		return errors.New("loop stopped")
	}
	return f.surface.Render(f.store.Get(buffer.Markup))
}

func (f *fakeConsole) Get(r buffer.Role) (string, error) { return f.store.Get(r), nil }

func (f *fakeConsole) Set(r buffer.Role, text string) error {
	f.store.Set(r, text)
	return nil
}

func (f *fakeConsole) Status() (string, error) { return "Ready", nil }

func newTestServer(t *testing.T) (*Server, *fakeConsole) {
	t.Helper()
	sf := NewSurface()
	fc := &fakeConsole{surface: sf, store: buffer.NewMemoryStore()}
	return &Server{Addr: "127.0.0.1:0", Surface: sf, Console: fc}, fc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_HostPage(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>jsbin preview</title>")
	assert.Contains(t, body, `content="/ws"`)
	assert.Contains(t, body, "allow-scripts")
	assert.NotContains(t, body, "allow-same-origin")
}

func TestServer_RawDocument(t *testing.T) {
	srv, _ := newTestServer(t)
	_ = srv.Surface.Render("<b>doc</b>")
	rec := do(t, srv.Handler(), http.MethodGet, "/doc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<b>doc</b>", rec.Body.String())
	assert.Equal(t, "1", rec.Header().Get("X-Jsbin-Version"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "sandbox")
}

func TestServer_ConsoleAPI(t *testing.T) {
	srv, fc := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPut, "/api/buffers/html", "<i>x</i>")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "<i>x</i>", fc.store.Get(buffer.Markup))

	rec = do(t, h, http.MethodGet, "/api/buffers/markup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<i>x</i>", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/render", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":1}`, rec.Body.String())
	assert.Equal(t, "<i>x</i>", srv.Surface.Current().Doc)

	rec = do(t, h, http.MethodGet, "/api/buffers/wasm", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown buffer role")

	fc.down = true
	rec = do(t, h, http.MethodPost, "/api/render", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jsbin_renders_total 1")
	assert.Contains(t, rec.Body.String(), `jsbin_console_requests_total{code="204",op="set"} 1`)
}

func TestServer_NoConsole(t *testing.T) {
	srv := &Server{Surface: NewSurface()}
	rec := do(t, srv.Handler(), http.MethodPost, "/api/render", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	rec = do(t, srv.Handler(), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_WebSocketPushesRenders(t *testing.T) {
	srv, _ := newTestServer(t)
	_ = srv.Surface.Render("first")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	read := func() Update {
		var u Update
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		require.NoError(t, conn.ReadJSON(&u))
		return u
	}
	assert.Equal(t, Update{Version: 1, Doc: "first"}, read())

	_ = srv.Surface.Render("second")
	assert.Equal(t, Update{Version: 2, Doc: "second"}, read())
}

func TestServer_BulkBuffers(t *testing.T) {
	srv, fc := newTestServer(t)
	h := srv.Handler()
	fc.store.Set(buffer.Style, "p{}")

	rec := do(t, h, http.MethodPut, "/api/buffers", `{"html":"<p>a</p>","javascript":"go()"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/buffers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"html":"<p>a</p>","css":"p{}","js":"go()"}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/buffers", `{"wasm":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/api/buffers", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "<p>a</p>", fc.store.Get(buffer.Markup))
}

func TestServer_BuffersSchema(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/schema/buffers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sch struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sch))
	assert.Equal(t, "jsbin buffers", sch.Title)
	assert.Len(t, sch.Properties, 3)
	assert.ElementsMatch(t, []string{"html", "css", "js"}, sch.Required)
}

func TestServer_ConsoleRateLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	limited := 0
	for i := 0; i < consoleBurst+50; i++ {
		if do(t, h, http.MethodGet, "/api/status", "").Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)
	// health is outside the console group
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/health", "").Code)
}

func TestServer_ConsoleRefusesOtherOrigins(t *testing.T) {
	srv, fc := newTestServer(t)
	h := srv.Handler()

	send := func(header, value string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set(header, value)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// the preview frame is sandboxed, so its requests carry Origin: null
	assert.Equal(t, http.StatusForbidden, send("Origin", "null"))
	assert.Equal(t, http.StatusForbidden, send("Origin", "https://evil.example"))
	assert.Equal(t, http.StatusForbidden, send("Sec-Fetch-Site", "cross-site"))
	assert.Equal(t, uint64(0), srv.Surface.Current().Version)

	// httptest requests target example.com
	assert.Equal(t, http.StatusOK, send("Origin", "http://example.com"))
	assert.Equal(t, http.StatusOK, send("Sec-Fetch-Site", "same-origin"))

	req := httptest.NewRequest(http.MethodPut, "/api/buffers/js", strings.NewReader("steal()"))
	req.Header.Set("Origin", "null")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "", fc.store.Get(buffer.Script))
}

func TestServer_WebSocketRefusesOtherOrigins(t *testing.T) {
	srv, _ := newTestServer(t)
	_ = srv.Surface.Render("user code")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err = websocket.DefaultDialer.Dial(url, http.Header{"Origin": {ts.URL}})
	require.NoError(t, err)
	conn.Close()
}
