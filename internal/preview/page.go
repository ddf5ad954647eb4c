package preview

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	appver "jsbin/internal/version"
)

//go:embed assets/index.html
var assets embed.FS

var hostTmpl = template.Must(template.ParseFS(assets, "assets/index.html"))

type hostData struct {
	Version string
	WSPath  string
}

// hostPage serves the page that owns the sandboxed preview frame.
func (s *Server) hostPage(c *gin.Context) {
	var b bytes.Buffer
	if err := hostTmpl.Execute(&b, hostData{Version: appver.AppVersion, WSPath: "/ws"}); err != nil {
		c.JSON(http.StatusInternalServerError, errJSON(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", b.Bytes())
}
