package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"roadexport/config"
	"roadexport/export"
	"roadexport/logging"
	"roadexport/osmprocessing"
	"roadexport/projection"
	"roadexport/render"
	"roadexport/session"
	"roadexport/watcher"
)

func main() {
	fs := config.NewFlagSet("roadexport")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: roadexport [flags] <extract.osm>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, fs.Args(), logger); err != nil {
		logger.Error("roadexport failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string, logger *slog.Logger) error {
	canvas := render.NewCanvas(cfg.Viewport.Width, cfg.Viewport.Height)

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithOnChange(func(s *session.Session) {
			if err := publish(cfg, s, canvas, logger); err != nil {
				logger.Error("failed to write outputs", "err", err)
			}
		}),
	}
	if cfg.Extract.DrivableOnly {
		opts = append(opts, session.WithExtractOptions(osmprocessing.WithDrivableOnly()))
	}

	vp := projection.Viewport{Width: float64(cfg.Viewport.Width), Height: float64(cfg.Viewport.Height)}
	sess := session.New(canvas, vp, opts...)

	if err := sess.SelectFiles(args); err != nil {
		var selErr *session.SelectionError
		if errors.As(err, &selErr) {
			return fmt.Errorf("nothing to do: %w", err)
		}
		if !cfg.Watch {
			return err
		}
		logger.Error("initial load failed, waiting for changes", "err", err)
	}

	if !cfg.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan session.Event)
	go func() {
		if err := watcher.Watch(ctx, args[0], events, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped", "err", err)
			stop()
		}
	}()

	logger.Info("watching for changes", "file", args[0])
	if err := sess.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func publish(cfg *config.Config, s *session.Session, canvas *render.Canvas, logger *slog.Logger) error {
	entries := s.Entries()
	if err := export.WriteAll(cfg.Output.Dir, entries); err != nil {
		return err
	}

	if cfg.Output.Preview != "" {
		if err := canvas.SavePNG(filepath.Join(cfg.Output.Dir, cfg.Output.Preview)); err != nil {
			return err
		}
	}

	if cfg.Output.GeoJSON {
		data, err := export.GeoJSON(s.Snapshot())
		if err != nil {
			return err
		}
		fname := filepath.Join(cfg.Output.Dir, "roads.geojson")
		if err := os.WriteFile(fname, data, 0o644); err != nil {
			return fmt.Errorf("failed to write file %q %w", fname, err)
		}
	}

	if cfg.Output.PBF {
		fname := filepath.Join(cfg.Output.Dir, "roads.osm.pbf")
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("failed to create %q %w", fname, err)
		}
		defer f.Close()

		if err := export.WritePBF(f, s.Snapshot().Map()); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %q %w", fname, err)
		}
	}

	logger.Info("wrote roads", "dir", cfg.Output.Dir, "roads", len(entries))
	return nil
}
