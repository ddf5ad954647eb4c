// Package compose assembles the three buffers into one standalone document.
package compose

import (
	"strings"

	"jsbin/internal/buffer"
)

// ErrorPrefix starts the text of the overlay shown when the script throws.
const ErrorPrefix = "JS Error: "

// DownloadName is the suggested file name for exported documents.
const DownloadName = "jsbin.html"

// placeholders are replaced in a single pass, so user text that happens to
// contain one is left alone.
const (
	stylePH  = "{{STYLE}}"
	markupPH = "{{MARKUP}}"
	scriptPH = "{{SCRIPT}}"
)

const documentTemplate = `
  <!doctype html>
  <html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width,initial-scale=1"/>
    <style>{{STYLE}}</style>
  </head>
  <body>
    {{MARKUP}}
    <script>
      try {
        {{SCRIPT}}
      } catch(e) {
        const err = document.createElement('pre');
        err.style.position='fixed'; err.style.bottom='8px'; err.style.right='8px';
        err.style.background='rgba(0,0,0,0.7)'; err.style.color='tomato'; err.style.padding='8px';
        err.textContent = '` + ErrorPrefix + `' + e;
        document.body.appendChild(err);
        console.error(e);
      }
    </script>
  </body>
  </html>
`

// Compose returns the document for the given markup, style and script.
// Inputs are inserted verbatim; nothing is escaped. The result depends only
// on the arguments.
func Compose(markup, style, script string) string {
	r := strings.NewReplacer(
		stylePH, style,
		markupPH, markup,
		scriptPH, script,
	)
	return r.Replace(documentTemplate)
}

// ComposeBuffers is Compose over a snapshot.
func ComposeBuffers(b buffer.Buffers) string {
	return Compose(b.HTML, b.CSS, b.JS)
}
