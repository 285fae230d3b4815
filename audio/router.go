package audio

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Router manages several audio sinks.
type Router interface {
	Sink
	AddSink(string, Sink, bool)
	RemoveSink(string) error
	Sink(string) (Sink, error)
	EnableSink(string, bool) error
}

type sink struct {
	Sink
	active bool
}

// DefaultRouter is the standard manager for audio sinks.
type DefaultRouter struct {
	sync.RWMutex // for map & variables
	sinks        map[string]*sink
}

// NewDefaultRouter returns an initialized default router for audio sinks.
func NewDefaultRouter() *DefaultRouter {
	return &DefaultRouter{
		sinks: make(map[string]*sink),
	}
}

// Write will write the Msg to all enabled audio sinks. All sinks are
// written to, even if some of them fail.
func (r *DefaultRouter) Write(msg Msg) error {
	r.RLock()
	defer r.RUnlock()

	var sinkErrors SinkErrors

	for _, name := range r.names() {
		s := r.sinks[name]
		if !s.active {
			continue
		}
		if err := s.Write(msg); err != nil {
			sinkErrors = append(sinkErrors, &SinkError{
				Sink:  name,
				Error: err,
			})
		}
	}

	if len(sinkErrors) > 0 {
		return sinkErrors
	}
	return nil
}

// Close closes all sinks, active or not.
func (r *DefaultRouter) Close() error {
	r.Lock()
	defer r.Unlock()

	var sinkErrors SinkErrors
	for _, name := range r.names() {
		if err := r.sinks[name].Close(); err != nil {
			sinkErrors = append(sinkErrors, &SinkError{
				Sink:  name,
				Error: err,
			})
		}
	}

	if len(sinkErrors) > 0 {
		return sinkErrors
	}
	return nil
}

// AddSink adds an audio device which satisfies the Sink interface. When marked
// as active, incoming audio Msgs will be written to this device.
func (r *DefaultRouter) AddSink(name string, s Sink, active bool) {
	r.Lock()
	defer r.Unlock()
	r.sinks[name] = &sink{s, active}
}

// RemoveSink removes an audio sink.
func (r *DefaultRouter) RemoveSink(name string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.sinks[name]; !ok {
		return fmt.Errorf("unknown sink %s", name)
	}
	delete(r.sinks, name)
	return nil
}

// Sink returns the requested audio Sink from the router.
func (r *DefaultRouter) Sink(name string) (Sink, error) {
	r.RLock()
	defer r.RUnlock()
	s, ok := r.sinks[name]
	if !ok {
		return nil, fmt.Errorf("unknown sink %s", name)
	}
	return s.Sink, nil
}

// EnableSink will mark the audio Sink as active, so that incoming audio
// Msgs will be written to it.
func (r *DefaultRouter) EnableSink(name string, active bool) error {
	r.Lock()
	defer r.Unlock()
	s, ok := r.sinks[name]
	if !ok {
		return fmt.Errorf("unknown sink %s", name)
	}
	s.active = active
	return nil
}

// names must be called with the lock held
func (r *DefaultRouter) names() []string {
	names := make([]string, 0, len(r.sinks))
	for name := range r.sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SinkError is an Error which is used when data could not be written to
// a particular audio Sink.
type SinkError struct {
	Sink  string
	Error error
}

// SinkErrors collects the errors of all sinks which failed.
type SinkErrors []*SinkError

func (e SinkErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, se := range e {
		msgs = append(msgs, fmt.Sprintf("sink %s: %v", se.Sink, se.Error))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the errors of the individual sinks.
func (e SinkErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, se := range e {
		errs = append(errs, se.Error)
	}
	return errs
}
