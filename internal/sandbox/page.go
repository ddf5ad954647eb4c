package sandbox

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"golang.org/x/net/html"

	"jsbin/internal/compose"
)

// ErrTimeout is returned when a script outlives Config.Timeout.
var ErrTimeout = errors.New("script timeout exceeded")

// Config tunes a Page.
type Config struct {
	Timeout time.Duration
}

// LogEntry is one console call.
type LogEntry struct {
	Level   string
	Message string
}

func (e LogEntry) String() string { return e.Level + ": " + e.Message }

// Page is a headless render surface.
type Page struct {
	cfg Config

	mu        sync.Mutex
	doc       *goquery.Document
	console   []LogEntry
	alerts    []string
	listeners int
	renders   int
}

// New creates an empty page.
func New(cfg Config) *Page {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Page{cfg: cfg}
}

// Render replaces the page with doc and runs its scripts. Errors thrown by
// scripts stay inside the page (see Console); only a timeout or an
// unparsable document is reported.
func (p *Page) Render(doc string) error {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	env := newEnv(d, p.cfg.Timeout)
	runErr := env.runScripts()
	env.flushStyles()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = d
	p.console = env.console
	p.alerts = env.alerts
	p.listeners = env.listeners
	p.renders++
	return runErr
}

// Renders counts Render calls that replaced the page.
func (p *Page) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders
}

// Text returns the text of the first element matching selector.
func (p *Page) Text(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return ""
	}
	return p.doc.Find(selector).First().Text()
}

// Exists reports whether selector matches anything.
func (p *Page) Exists(selector string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc != nil && p.doc.Find(selector).Length() > 0
}

// HTML serializes the page after script execution.
func (p *Page) HTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return ""
	}
	s, _ := p.doc.Html()
	return s
}

// Console returns the console calls of the last render.
func (p *Page) Console() []LogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LogEntry(nil), p.console...)
}

// Alerts returns the alert() messages of the last render.
func (p *Page) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.alerts...)
}

// Listeners counts addEventListener calls of the last render.
func (p *Page) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listeners
}

// Errors returns the texts of the error overlays added by the script guard.
func (p *Page) Errors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil
	}
	var out []string
	p.doc.Find("body pre").Each(func(_ int, s *goquery.Selection) {
		if t := s.Text(); strings.HasPrefix(t, compose.ErrorPrefix) {
			out = append(out, t)
		}
	})
	return out
}

// env is the per-render script environment.
type env struct {
	doc     *goquery.Document
	vm      *goja.Runtime
	timeout time.Duration

	elems     map[*html.Node]*goja.Object
	styles    map[*html.Node]*goja.Object
	console   []LogEntry
	alerts    []string
	listeners int
}

func newEnv(d *goquery.Document, timeout time.Duration) *env {
	e := &env{
		doc:     d,
		vm:      goja.New(),
		timeout: timeout,
		elems:   map[*html.Node]*goja.Object{},
		styles:  map[*html.Node]*goja.Object{},
	}
	e.setupGlobals()
	return e
}

func (e *env) runScripts() error {
	var scripts []string
	e.doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		scripts = append(scripts, s.Text())
	})
	for i, src := range scripts {
		if err := e.run(fmt.Sprintf("script%d.js", i), src); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) run(name, src string) error {
	defer armTimeout(e.vm, e.timeout)()

	_, err := e.vm.RunScript(name, src)
	if err == nil {
		return nil
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("%s: %w", name, ErrTimeout)
	}
	// Uncaught errors, including syntax errors that keep the guard from
	// ever running, surface on the console as they would in a browser.
	e.log("error", "Uncaught "+err.Error())
	return nil
}

// armTimeout interrupts vm after d. The returned disarm stops the timer
// before clearing, so a timer firing late cannot leave an interrupt set for
// the next script.
func armTimeout(vm *goja.Runtime, d time.Duration) (disarm func()) {
	timer := time.AfterFunc(d, func() { vm.Interrupt(ErrTimeout) })
	return func() {
		timer.Stop()
		vm.ClearInterrupt()
	}
}

func (e *env) log(level, msg string) {
	e.console = append(e.console, LogEntry{Level: level, Message: msg})
}
