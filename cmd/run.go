package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mouseshare/internal/api"
	"mouseshare/internal/config"
	"mouseshare/internal/edge"
	"mouseshare/internal/input"
	"mouseshare/internal/osutils"
	"mouseshare/internal/session"
	"mouseshare/internal/tray"
)

func runCompanion(cmd *cobra.Command, f *flags) error {
	cfgMgr, cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	log := slog.Default().With("component", "main")
	log.Info("mouseshare companion starting", "version", version, "target", cfg.Target.Addr(), "config", cfgMgr.Path())

	osutils.Report(osutils.Preflight())

	geom := input.ResolveGeometry(input.Geometry{Width: cfg.Screen.Width, Height: cfg.Screen.Height})

	injector, err := input.NewSystemInjector(geom)
	if err != nil {
		return fmt.Errorf("input injector: %w", err)
	}
	defer injector.Close()

	keymap := input.DefaultKeymap()
	keymap.SetOverrides(cfg.Keymap)

	policy := edge.Policy{Edge: cfg.Edge.Side, Threshold: cfg.Edge.Threshold}
	if err := policy.Validate(); err != nil {
		return err
	}
	monitor := edge.NewMonitor(policy)
	dispatcher := input.NewDispatcher(injector, keymap, monitor, geom)

	opts := session.Options{
		Addr:           cfg.Target.Addr(),
		ConnectTimeout: cfg.Session.ConnectTimeout,
		ReadTimeout:    cfg.Session.ReadTimeout,
		Backoff:        cfg.Session.Backoff,
		PollInterval:   cfg.Edge.PollInterval,
	}
	if cfg.Edge.Poll {
		opts.Pointer = input.SystemPointer{}
	}
	client := session.NewClient(opts, dispatcher, monitor)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Keymap overrides apply without reconnecting.
	cfgMgr.RegisterChangeCallback(func(c *config.Config) {
		keymap.SetOverrides(c.Keymap)
		log.Info("keymap overrides updated", "count", len(c.Keymap))
	})
	if err := cfgMgr.Watch(ctx); err != nil {
		log.Warn("config hot reload disabled", "err", err)
	}

	if cfg.Status.Listen != "" {
		srv := api.NewServer(client, dispatcher, geom, version)
		client.OnStateChange(srv.Publish)
		go func() {
			if err := srv.Start(ctx, cfg.Status.Listen); err != nil {
				log.Error("status server stopped", "err", err)
			}
		}()
	}

	if !cfg.Tray {
		return ignoreCanceled(client.Run(ctx))
	}

	menu := tray.NewStatusMenu(cfg.Target.Addr(), geom.Width, geom.Height, cancel)
	client.OnStateChange(menu.Update)

	errCh := make(chan error, 1)
	go func() {
		errCh <- client.Run(ctx)
		menu.Stop()
	}()
	menu.Run()
	cancel()
	return ignoreCanceled(<-errCh)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		slog.Info("mouseshare companion stopped")
		return nil
	}
	return err
}
