package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jsbin/internal/system"
)

// Server exposes a Surface on the loopback interface.
type Server struct {
	Addr    string
	Surface *Surface
	// Console backs the /api/render and /api/buffers routes. Nil disables them.
	Console Console
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	system.Logger.Info("preview server listening", "addr", s.Addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(system.Writer("http"), "/ws"))
	r.Use(gin.Recovery())

	r.GET("/", s.hostPage)
	r.GET("/doc", s.rawDocument)
	r.GET("/ws", s.streamUpdates)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Surface.metrics.reg, promhttp.HandlerOpts{})))
	mountAPI(r.Group("/api"), s)
	return r
}

// rawDocument serves the displayed document on its own, outside the host
// page. Opening it directly gives the document the surface's origin, so the
// host page never links to it.
func (s *Server) rawDocument(c *gin.Context) {
	cur := s.Surface.Current()
	c.Header("X-Jsbin-Version", uitoa(cur.Version))
	c.Header("Content-Security-Policy", "sandbox allow-scripts")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cur.Doc))
}

// OpenBrowser asks the desktop to show url. It does not wait for the
// browser to exit.
func OpenBrowser(url string) error {
	name, args := "xdg-open", []string{url}
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
