package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/memberdesk/internal/httpserver"
	"github.com/tinytelemetry/memberdesk/internal/model"
	"github.com/tinytelemetry/memberdesk/internal/roster"
	"github.com/tinytelemetry/memberdesk/internal/tui"
)

// runTUI runs the table until the user quits. When the API is enabled it is
// served alongside and shares the engine.
func runTUI(cfg cliConfig, engine *roster.Engine, source model.RecordSource) error {
	if home, err := os.UserHomeDir(); err == nil {
		if err := tui.InitializeSkin(cfg.Skin, configDir(home)); err != nil {
			log.Printf("Warning: failed to load skin %q: %v (using default)", cfg.Skin, err)
		}
	}

	table := tui.NewTableModel(engine, source)
	app := tui.NewApp(tui.NewTablePage(table))
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Send blocks until the event loop receives, so it must not run on the
	// goroutine that is inside Update.
	engine.OnChange(func() {
		go p.Send(tui.EngineChangedMsg{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Use errgroup for concurrent goroutine lifecycle management.
	g, gctx := errgroup.WithContext(ctx)

	if cfg.APIEnabled {
		srv := httpserver.NewServer(cfg.APIAddr, engine)
		if err := srv.Start(); err != nil {
			log.Printf("Warning: failed to start HTTP API on %s: %v", srv.Addr(), err)
		} else {
			log.Printf("HTTP API listening on %s", srv.Addr())
			g.Go(func() error {
				<-gctx.Done()
				return srv.Stop()
			})
		}
	}

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return fmt.Errorf("TUI requires a real terminal (use -headless to serve the API only)")
			}
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// runHeadless fetches the records once and serves the API until SIGINT or
// SIGTERM.
func runHeadless(cfg cliConfig, engine *roster.Engine, source model.RecordSource) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpserver.NewServer(cfg.APIAddr, engine)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting HTTP API on %s: %w", srv.Addr(), err)
	}
	fmt.Printf("memberdesk API listening on http://%s/api\n", srv.Addr())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := source.Fetch(gctx)
		if err != nil {
			log.Printf("headless: fetching records: %v", err)
			return nil
		}
		engine.Load(records)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("headless: errgroup exited with error: %v", err)
	}

	fmt.Println("\nShutting down...")
	return srv.Stop()
}

// configureRuntimeLogger sends the standard logger to path so diagnostics do
// not draw over the TUI. It falls back to stderr when the file cannot be
// opened.
func configureRuntimeLogger(path string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}
