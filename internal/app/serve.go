package app

import (
	"context"
	"fmt"

	"jsbin/internal/buffer"
	"jsbin/internal/playground"
	"jsbin/internal/preview"
	"jsbin/internal/project"
	"jsbin/internal/sandbox"
	"jsbin/internal/sched"
	"jsbin/internal/system"
)

// ServeOptions configures headless watch mode.
type ServeOptions struct {
	Addr    string
	Open    bool
	Dir     string
	Session playground.Options
	// Check also renders every document into a headless page and logs the
	// script errors it shows.
	Check *sandbox.Page
}

// Serve watches a project directory and keeps the preview in step with it
// until ctx is canceled. The editors are the user's own; file saves are the
// change notifications.
func Serve(ctx context.Context, opts ServeOptions) error {
	seed, err := project.Load(opts.Dir)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sched.NewLoop()
	go loop.Run(ctx)

	surface := preview.NewSurface()
	sinks := []preview.Sink{surface}
	if opts.Check != nil {
		sinks = append(sinks, checkSink{page: opts.Check})
	}
	store := buffer.NewMemoryStore()
	store.Load(seed)

	var sess *playground.Session
	if !loop.Do(func() {
		sess = playground.New(store, preview.Tee(sinks...), loop, opts.Session)
		sess.Status().OnChange(func(s string) { system.Logger.Debug("status", "text", s) })
		sess.Run()
	}) {
		return ctx.Err()
	}

	go func() {
		err := project.Watch(ctx, opts.Dir, func(r buffer.Role, text string) {
			system.Logger.Info("file changed", "file", r.FileName())
			loop.Post(func() { sess.Set(r, text) })
		})
		if err != nil {
			system.Logger.Error("watch failed", "dir", opts.Dir, "err", err)
		}
	}()

	url := fmt.Sprintf("http://%s/", opts.Addr)
	system.Logger.Info("serving project", "dir", opts.Dir, "url", url, "auto", !opts.Session.Manual)
	if opts.Open {
		if err := preview.OpenBrowser(url); err != nil {
			system.Logger.Warn("failed to open browser", "err", err)
		}
	}
	srv := &preview.Server{
		Addr:    opts.Addr,
		Surface: surface,
		Console: playground.NewRemote(sess, loop.Do),
	}
	return srv.Start(ctx)
}

// checkSink renders into a headless page and reports what the script did.
// It only logs: the browser surface has already taken the document, so a
// failed check must not make the session report a failed render.
type checkSink struct {
	page *sandbox.Page
}

func (c checkSink) Render(doc string) error {
	if err := c.page.Render(doc); err != nil {
		system.Logger.Warn("headless check failed", "err", err)
		return nil
	}
	for _, e := range c.page.Errors() {
		system.Logger.Warn("script error", "text", e)
	}
	return nil
}
