package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/txcompanion/internal/hooks"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/nats"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/mark3labs/txcompanion/internal/sdcard"
	"github.com/spf13/afero"
)

// openLibrary starts the embedded NATS server under the data directory and
// returns the model library with a cleanup function.
func openLibrary(ctx context.Context) (*library.Store, func(), error) {
	e, err := nats.Open(ctx, filepath.Join(cfg.DataDir, "nats"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open model library: %w", err)
	}
	cleanup := func() {
		if err := e.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing model library: %v\n", err)
		}
	}
	return library.NewStore(e.JS, e.Stream), cleanup, nil
}

func newCard() *sdcard.Card {
	return sdcard.New(afero.NewOsFs(), cfg)
}

// boardFor resolves the --radio flag, falling back to the configured radio.
func boardFor(id string) (*radio.Board, error) {
	if id == "" {
		id = cfg.Radio
	}
	return radio.Lookup(id)
}

// runHooks executes the hooks configured in the working directory for one
// event and echoes their output.
func runHooks(ctx context.Context, pick func(hooks.HooksConfig) []*hooks.HookConfig, vars hooks.Variables) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	hc, err := hooks.LoadConfig(dir)
	if err != nil || hc == nil {
		return err
	}
	out, err := hooks.ExecuteAll(ctx, pick(hc.Hooks), dir, vars)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Print(out)
	}
	return nil
}

func postModelSave(h hooks.HooksConfig) []*hooks.HookConfig { return h.PostModelSave }
func postSDInstall(h hooks.HooksConfig) []*hooks.HookConfig { return h.PostSDInstall }
