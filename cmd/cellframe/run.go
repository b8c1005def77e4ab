package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/cellframe/pkg/config"
	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/logging"
	"github.com/odvcencio/cellframe/pkg/telemetry"
	tcellbackend "github.com/odvcencio/cellframe/pkg/ui/backend/tcell"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var boardPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the interactive demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), opts, boardPath)
		},
	}
	cmd.Flags().StringVar(&boardPath, "board", "", "YAML board to show in the grid (default 3x3)")
	return cmd
}

func runDemo(parent context.Context, opts *rootOptions, boardPath string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	theme, err := cfg.UI.Theme()
	if err != nil {
		return err
	}
	b, err := loadBoard(boardPath)
	if err != nil {
		return err
	}
	logger, err := openLogger(cfg)
	if err != nil {
		return withExitCode(err, 1)
	}
	defer logger.Close()

	dev, err := tcellbackend.New()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "open terminal")
	}

	reg := prometheus.NewRegistry()
	d := newDemo(b, theme)
	app := runtime.NewApp(runtime.AppConfig{
		Backend:  dev,
		Root:     d.root,
		TickRate: cfg.UI.TickInterval,
		MaxFPS:   cfg.UI.MaxFPS,
		Logger:   logger,
		Metrics:  telemetry.NewMetrics(reg),
	})

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return app.Run(gctx)
	})
	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.Listen, reg, logger)
		})
	}
	if opts.configPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, opts.configPath, func(next *config.Config, err error) {
				reloadTheme(app, d, logger, next, err)
			})
		})
	}
	return ignoreCanceled(g.Wait())
}

// reloadTheme hands a reloaded configuration to the loop goroutine.
// Invalid files are logged and the current theme is kept.
func reloadTheme(app *runtime.App, d *demo, logger *logging.Logger, cfg *config.Config, err error) {
	if err != nil {
		logger.Warn(logging.CategoryConfig, "reload", err.Error(), nil)
		return
	}
	theme, err := cfg.UI.Theme()
	if err != nil {
		logger.Warn(logging.CategoryConfig, "reload", err.Error(), nil)
		return
	}
	logger.Info(logging.CategoryConfig, "reload", "theme reloaded", nil)
	app.Queue(func() { d.applyTheme(theme) })
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           telemetry.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info(logging.CategoryHost, "metrics", "serving metrics", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, errors.ErrCodeInternal, "serve metrics").WithContext("addr", addr)
	}
	return nil
}
