package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logogrip/internal/catalog"
	"logogrip/internal/clipboard"
	"logogrip/internal/config"
	"logogrip/internal/eventbus"
	"logogrip/internal/preview"
	"logogrip/internal/ui"
)

// E2EEnv makes the browser print a readiness marker for PTY tests
const E2EEnv = "LOGOGRIP_E2E_TEST"

// runBrowse starts the interactive gallery
func (a *app) runBrowse(cmd *cobra.Command, _ []string) error {
	cfg := a.cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(a.logger)
	defer bus.Close()

	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		a.logger.Info("wrote default config", zap.String("path", e.(eventbus.ConfigSavedEvent).Path))
	})
	bus.Subscribe(eventbus.EventLinkCopied, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.LinkCopiedEvent)
		a.logger.Info("link copied", zap.String("slug", ev.Slug), zap.String("link", ev.Link))
	})
	a.ensureConfigFile(bus)

	src, err := a.source()
	if err != nil {
		return err
	}

	svc := catalog.NewService(ctx, bus, src, a.logger)
	defer svc.Close()

	if fs, ok := src.(*catalog.FileSource); ok && cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(fs.Path, bus, a.logger, catalog.DefaultDebounce)
		if err == nil {
			err = watcher.Start(ctx)
		}
		if err != nil {
			a.logger.Warn("manifest watch disabled", zap.String("path", fs.Path), zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	var renderer *preview.Renderer
	if cfg.UI.Preview {
		assetBase := cfg.Catalog.AssetRoot
		if assetBase == "" {
			assetBase = src.AssetBase()
		}
		renderer, err = preview.NewRenderer(preview.Options{
			AssetBase: assetBase,
			UserAgent: cfg.Catalog.UserAgent,
			Logger:    a.logger,
		})
		if err != nil {
			return err
		}
	}

	model, err := ui.NewModel(ui.Options{
		Context:   ctx,
		Bus:       bus,
		Config:    cfg,
		Preview:   renderer,
		Clipboard: clipboard.New(),
		Logger:    a.logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward catalog events to the UI loop
	done := make(chan struct{})
	events := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		case <-done:
		default:
			a.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventDatasetLoadStarted,
		eventbus.EventDatasetLoaded,
		eventbus.EventDatasetLoadFailed,
		eventbus.EventError,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case e := <-events:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	bus.Publish(eventbus.LoadRequestedEvent{Reason: "startup"})

	if os.Getenv(E2EEnv) == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	a.logger.Info("starting UI", zap.String("manifest", src.Origin()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	a.logger.Info("UI exited")
	return nil
}

// ensureConfigFile writes the defaults to the user config directory the
// first time the gallery runs without any config file.
func (a *app) ensureConfigFile(bus eventbus.EventBus) {
	if a.configPath != "" {
		return
	}
	if _, found := config.FindFile(); found {
		return
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path := filepath.Join(dir, "logogrip", config.FileName)
	if err := config.NewConfigServiceWithBus(bus).SaveToPath(config.DefaultConfig(), path); err != nil {
		a.logger.Warn("failed to write default config", zap.String("path", path), zap.Error(err))
	}
}
