package preview

import "errors"

// Sink displays a composed document.
type Sink interface {
	Render(doc string) error
}

// Discard drops every document.
var Discard Sink = discard{}

type discard struct{}

func (discard) Render(string) error { return nil }

// Tee renders into every sink in order and joins their errors.
func Tee(sinks ...Sink) Sink { return tee(sinks) }

type tee []Sink

func (t tee) Render(doc string) error {
	var errs []error
	for _, s := range t {
		if err := s.Render(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
