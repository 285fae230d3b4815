package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Rewinder is implemented by sources which can start over from the
// beginning, like a wav file.
type Rewinder interface {
	Rewind()
}

// Selector manages several audio sources of which one is active. Reading
// from the Selector reads from the active source.
type Selector interface {
	Source
	AddSource(string, Source)
	RemoveSource(string) error
	SetSource(string) error
	ActiveSource() string
}

type selector struct {
	sync.Mutex
	sources map[string]Source
	active  string
}

// NewSelector returns an empty Selector.
func NewSelector() Selector {
	return &selector{
		sources: make(map[string]Source),
	}
}

// AddSource adds a source. The first source added becomes the active one.
func (s *selector) AddSource(name string, src Source) {
	s.Lock()
	defer s.Unlock()
	s.sources[name] = src
	if s.active == "" {
		s.active = name
	}
}

func (s *selector) RemoveSource(name string) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.sources[name]; !ok {
		return fmt.Errorf("unknown source %s", name)
	}
	delete(s.sources, name)
	if s.active == name {
		s.active = ""
	}
	return nil
}

func (s *selector) SetSource(name string) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.sources[name]; !ok {
		return fmt.Errorf("unknown source %s", name)
	}
	s.active = name
	return nil
}

func (s *selector) ActiveSource() string {
	s.Lock()
	defer s.Unlock()
	return s.active
}

// Read reads from the active source. Sources which implement Rewinder
// are played in a loop.
func (s *selector) Read() (Msg, error) {
	s.Lock()
	defer s.Unlock()

	src, ok := s.sources[s.active]
	if !ok {
		return Msg{}, errors.New("no active source")
	}

	msg, err := src.Read()
	if err == io.EOF {
		if r, ok := src.(Rewinder); ok {
			r.Rewind()
			return src.Read()
		}
	}
	return msg, err
}

func (s *selector) Samplerate() float64 {
	s.Lock()
	defer s.Unlock()
	if src, ok := s.sources[s.active]; ok {
		return src.Samplerate()
	}
	return 0
}

func (s *selector) Channels() int {
	s.Lock()
	defer s.Unlock()
	if src, ok := s.sources[s.active]; ok {
		return src.Channels()
	}
	return 0
}
