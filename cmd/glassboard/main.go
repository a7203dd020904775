package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/nhle/glassboard/internal/app"
	"github.com/nhle/glassboard/internal/board"
	"github.com/nhle/glassboard/internal/logging"
	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/schema"
	"github.com/nhle/glassboard/internal/store"
	"github.com/nhle/glassboard/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "glassboard:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("glassboard", pflag.ContinueOnError)
	model.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfgPath, err := fs.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := model.LoadConfig(cfgPath, fs)
	if err != nil {
		return err
	}

	log, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.Storage.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := store.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	loader := schema.NewLoader(db,
		schema.WithKeys(cfg.Storage.Key, cfg.Storage.LegacyKey),
		schema.WithLogger(log),
	)
	if reset, _ := fs.GetBool("reset"); reset {
		if err := loader.Reset(ctx); err != nil {
			return err
		}
		log.Info("saved boards discarded")
	}
	if keys, err := loader.StoredKeys(ctx); err == nil {
		log.WithField("keys", keys).Debug("storage opened")
	}

	res := loader.LoadDetailed(ctx)
	log.WithField("version", res.Version).
		WithField("boards", len(res.Root.Boards)).
		Info("state loaded")

	s := board.New(res.Root, loader, board.WithLogger(log))
	theme.Apply(cfg.Display.Theme)

	p := tea.NewProgram(app.New(s, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	if err := s.LastSaveErr(); err != nil {
		return fmt.Errorf("last save failed: %w", err)
	}
	return nil
}
