package preview

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"golang.org/x/time/rate"

	"jsbin/internal/buffer"
	appver "jsbin/internal/version"
)

// Console is the programmatic facade over a running session. Calls must be
// safe from HTTP goroutines; implementations hand them to the session loop.
type Console interface {
	Render() error
	Get(role buffer.Role) (string, error)
	Set(role buffer.Role, text string) error
	Status() (string, error)
}

// maxBufferBytes caps PUT bodies.
const maxBufferBytes = 4 << 20

// Console requests share one token bucket; every call runs on the session loop.
const (
	consoleRate  = rate.Limit(50)
	consoleBurst = 100
)

func mountAPI(api *gin.RouterGroup, s *Server) {
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": appver.AppVersion})
	})
	api.GET("/current", func(c *gin.Context) {
		cur := s.Surface.Current()
		c.JSON(http.StatusOK, gin.H{"version": cur.Version, "bytes": len(cur.Doc), "viewers": s.Surface.Viewers()})
	})

	api.GET("/schema/buffers", func(c *gin.Context) {
		c.JSON(http.StatusOK, buffersSchema())
	})

	con := api.Group("", s.requireConsole, s.sameOrigin, s.limit(rate.NewLimiter(consoleRate, consoleBurst)))
	con.POST("/render", func(c *gin.Context) {
		if err := s.Console.Render(); err != nil {
			s.fail(c, "render", http.StatusInternalServerError, err)
			return
		}
		s.count("render", http.StatusOK)
		c.JSON(http.StatusOK, gin.H{"version": s.Surface.Current().Version})
	})
	con.GET("/status", func(c *gin.Context) {
		st, err := s.Console.Status()
		if err != nil {
			s.fail(c, "status", http.StatusServiceUnavailable, err)
			return
		}
		s.count("status", http.StatusOK)
		c.JSON(http.StatusOK, gin.H{"status": st})
	})
	con.GET("/buffers", func(c *gin.Context) {
		var all buffer.Buffers
		for _, r := range buffer.Roles {
			text, err := s.Console.Get(r)
			if err != nil {
				s.fail(c, "get", http.StatusServiceUnavailable, err)
				return
			}
			all.Set(r, text)
		}
		s.count("get", http.StatusOK)
		c.JSON(http.StatusOK, all)
	})
	// PUT /buffers replaces the buffers named in the body and leaves the others.
	con.PUT("/buffers", func(c *gin.Context) {
		var patch map[string]string
		if err := c.ShouldBindJSON(&patch); err != nil {
			s.fail(c, "set", http.StatusBadRequest, err)
			return
		}
		roles := make(map[buffer.Role]string, len(patch))
		for name, text := range patch {
			r, err := buffer.ParseRole(name)
			if err != nil {
				s.fail(c, "set", http.StatusBadRequest, err)
				return
			}
			roles[r] = text
		}
		for _, r := range buffer.Roles {
			text, ok := roles[r]
			if !ok {
				continue
			}
			if err := s.Console.Set(r, text); err != nil {
				s.fail(c, "set", http.StatusServiceUnavailable, err)
				return
			}
		}
		s.count("set", http.StatusNoContent)
		c.Status(http.StatusNoContent)
	})
	con.GET("/buffers/:role", func(c *gin.Context) {
		role, err := buffer.ParseRole(c.Param("role"))
		if err != nil {
			s.fail(c, "get", http.StatusNotFound, err)
			return
		}
		text, err := s.Console.Get(role)
		if err != nil {
			s.fail(c, "get", http.StatusServiceUnavailable, err)
			return
		}
		s.count("get", http.StatusOK)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	})
	con.PUT("/buffers/:role", func(c *gin.Context) {
		role, err := buffer.ParseRole(c.Param("role"))
		if err != nil {
			s.fail(c, "set", http.StatusNotFound, err)
			return
		}
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBufferBytes+1))
		if err != nil {
			s.fail(c, "set", http.StatusBadRequest, err)
			return
		}
		if len(body) > maxBufferBytes {
			s.fail(c, "set", http.StatusRequestEntityTooLarge, errors.New("buffer too large"))
			return
		}
		if err := s.Console.Set(role, string(body)); err != nil {
			s.fail(c, "set", http.StatusServiceUnavailable, err)
			return
		}
		s.count("set", http.StatusNoContent)
		c.Status(http.StatusNoContent)
	})
}

// buffersSchema describes the GET /api/buffers body.
func buffersSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&buffer.Buffers{})
	sch.Title = "jsbin buffers"
	return sch
}

func (s *Server) requireConsole(c *gin.Context) {
	if s.Console == nil {
		c.AbortWithStatusJSON(http.StatusNotImplemented, errJSON(errors.New("console API not available")))
		return
	}
	c.Next()
}

// sameOrigin rejects browser requests made from any other page, including
// the sandboxed preview frame whose origin is "null". Requests without an
// Origin header (curl, scripts) pass.
func (s *Server) sameOrigin(c *gin.Context) {
	r := c.Request
	origin := r.Header.Get("Origin")
	if r.Header.Get("Sec-Fetch-Site") == "cross-site" || (origin != "" && origin != "http://"+r.Host) {
		s.count("origin", http.StatusForbidden)
		c.AbortWithStatusJSON(http.StatusForbidden, errJSON(errors.New("cross-origin request refused")))
		return
	}
	c.Next()
}

func (s *Server) limit(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			s.count("limit", http.StatusTooManyRequests)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errJSON(errors.New("rate limit exceeded")))
			return
		}
		c.Next()
	}
}

func (s *Server) fail(c *gin.Context, op string, code int, err error) {
	s.count(op, code)
	c.JSON(code, errJSON(err))
}

func (s *Server) count(op string, code int) {
	s.Surface.metrics.api.WithLabelValues(op, strconv.Itoa(code)).Inc()
}

func errJSON(err error) gin.H { return gin.H{"error": err.Error()} }

func uitoa(v uint64) string { return strconv.FormatUint(v, 10) }
