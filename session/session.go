// Package session holds the currently loaded roads and keeps the preview and
// the export list in step with them.
//
// A Session is driven from a single goroutine. Every load either replaces the
// whole snapshot or leaves the previous one in place.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/paulmach/orb"

	"roadexport/export"
	"roadexport/osmprocessing"
	"roadexport/projection"
	"roadexport/render"
)

// SelectionError is returned when a selection does not name exactly one
// file. Nothing is loaded and nothing changes.
type SelectionError struct {
	Count int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("expected exactly one file, got %d", e.Count)
}

func (e *SelectionError) IsNoop() bool {
	return true
}

type Session struct {
	logger      *slog.Logger
	surface     render.Surface
	viewport    projection.Viewport
	extractOpts []osmprocessing.Option
	onChange    func(*Session)

	snap    *osmprocessing.Snapshot
	entries []export.Entry
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithExtractOptions(opts ...osmprocessing.Option) Option {
	return func(s *Session) {
		s.extractOpts = append(s.extractOpts, opts...)
	}
}

// WithOnChange registers fn to run after every successful load or resize.
func WithOnChange(fn func(*Session)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// New creates a session with no roads. Until the first load the bounds are
// the viewport itself.
func New(surface render.Surface, vp projection.Viewport, opts ...Option) *Session {
	s := &Session{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		surface:  surface,
		viewport: vp,
		snap:     osmprocessing.EmptySnapshot(orb.Bound{Max: orb.Point{vp.Width, vp.Height}}),
		entries:  []export.Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}

	surface.Resize(int(vp.Width), int(vp.Height))
	if err := render.Draw(surface, s.snap, vp); err != nil {
		s.logger.Warn("initial draw failed", "err", err)
	}

	return s
}

func (s *Session) Snapshot() *osmprocessing.Snapshot {
	return s.snap
}

func (s *Session) Bounds() orb.Bound {
	return s.snap.Bounds()
}

func (s *Session) Viewport() projection.Viewport {
	return s.viewport
}

func (s *Session) Entries() []export.Entry {
	return append([]export.Entry(nil), s.entries...)
}

// Load extracts raw and, when everything succeeds, swaps in the new roads,
// redraws and regenerates the export list.
func (s *Session) Load(raw []byte) error {
	snap, err := osmprocessing.Extract(raw, s.extractOpts...)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	// Degenerate bounds reject the whole document, so its roads are not
	// exported either.
	if _, err := projection.New(snap.Bounds(), s.viewport); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	entries, err := export.Entries(snap)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	s.snap, s.entries = snap, entries
	s.logSummary()

	if err := render.Draw(s.surface, s.snap, s.viewport); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	s.changed()
	return nil
}

// SelectFiles loads the single file in paths.
func (s *Session) SelectFiles(paths []string) error {
	if len(paths) != 1 {
		return &SelectionError{Count: len(paths)}
	}

	raw, err := os.ReadFile(paths[0])
	if err != nil {
		return fmt.Errorf("failed to read %q %w", paths[0], err)
	}

	s.logger.Info("loading", "file", paths[0], "bytes", len(raw))
	return s.Load(raw)
}

// Resize redraws the current roads for a new viewport. The bounds stay as
// they are.
func (s *Session) Resize(vp projection.Viewport) error {
	s.viewport = vp
	s.surface.Resize(int(vp.Width), int(vp.Height))

	if err := s.Redraw(); err != nil {
		return err
	}

	s.changed()
	return nil
}

func (s *Session) Redraw() error {
	if err := render.Draw(s.surface, s.snap, s.viewport); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange(s)
	}
}

func (s *Session) logSummary() {
	b := s.snap.Bounds()
	ways := s.snap.Ways()

	attrs := []any{
		"ways", len(ways),
		"minx", b.Min[0], "miny", b.Min[1],
		"maxx", b.Max[0], "maxy", b.Max[1],
	}

	if outside := osmprocessing.OutsideBounds(ways, b); outside > 0 {
		s.logger.Warn("points outside declared bounds", "points", outside)
	}

	network, err := osmprocessing.NewNetwork(s.snap.Map())
	if err != nil {
		s.logger.Debug("network summary unavailable", "err", err)
	} else {
		attrs = append(attrs, "junctions", len(network.Junctions()))
		if components, err := network.Components(); err == nil {
			attrs = append(attrs, "components", components)
		}
	}

	s.logger.Info("loaded roads", attrs...)
}
