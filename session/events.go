package session

import (
	"context"
	"errors"

	"roadexport/projection"
)

// Event is something that asks the session to reload or redraw.
type Event interface {
	apply(s *Session) error
}

type LoadEvent struct {
	Raw []byte
}

func (e LoadEvent) apply(s *Session) error {
	return s.Load(e.Raw)
}

type SelectEvent struct {
	Paths []string
}

func (e SelectEvent) apply(s *Session) error {
	return s.SelectFiles(e.Paths)
}

type ResizeEvent struct {
	Viewport projection.Viewport
}

func (e ResizeEvent) apply(s *Session) error {
	return s.Resize(e.Viewport)
}

func (s *Session) Handle(ev Event) error {
	return ev.apply(s)
}

// Run handles events one at a time until ctx is done or events is closed.
// A failed event is logged and leaves the session as it was.
func (s *Session) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}

			err := s.Handle(ev)
			var selErr *SelectionError
			switch {
			case err == nil:
			case errors.As(err, &selErr):
				s.logger.Debug("selection ignored", "err", err)
			default:
				s.logger.Error("event failed, keeping previous roads", "err", err)
			}
		}
	}
}
