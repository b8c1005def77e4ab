package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/odvcencio/cellframe/pkg/config"
	"github.com/odvcencio/cellframe/pkg/logging"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "cellframe",
		Short: "Retained-mode layout and rendering for character-cell terminals",
		Long: `cellframe measures, arranges and renders a tree of widgets onto a
character-cell device. The run command starts the interactive demo; snapshot
prints one frame of it as ANSI text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.cellframe/config.yaml then ./.cellframe/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log debug events")

	root.AddCommand(newRunCmd(opts), newSnapshotCmd(opts), newLogCmd(opts), newVersionCmd())
	return root
}

// loadConfig reads the file named by --config, or the default locations.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Logging.Level = string(logging.LevelDebug)
	}
	return cfg, nil
}

// openLogger opens the session log, or returns nil when logging has no
// directory.
func openLogger(cfg *config.Config) (*logging.Logger, error) {
	dir := cfg.Logging.LogDir()
	if dir == "" {
		return nil, nil
	}
	logger, err := logging.NewLogger(dir, logging.NewSessionID())
	if err != nil {
		return nil, err
	}
	logger.SetMinLevel(cfg.Logging.LogLevel())
	return logger, nil
}

func ignoreCanceled(err error) error {
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cellframe %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, "  Built:      %s\n", buildDate)
	}
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}
