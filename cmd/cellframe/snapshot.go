package main

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/backend/ansi"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var (
		width, height int
		boardPath     string
		plain         bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one frame of the demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			w, h := snapshotSize(os.Stdout, width, height)
			var profile []ansi.Option
			if plain {
				profile = append(profile, ansi.WithProfile(termenv.Ascii))
			}
			writeSnapshot(cmd.OutOrStdout(), newDemo(b, theme), w, h, profile...)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Frame width (default terminal width or 80)")
	cmd.Flags().IntVar(&height, "height", 0, "Frame height (default terminal height or 24)")
	cmd.Flags().StringVar(&boardPath, "board", "", "YAML board to show in the grid (default 3x3)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without color escapes")
	return cmd
}

// snapshotSize fills unset dimensions from the terminal behind f.
func snapshotSize(f *os.File, width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th := fallbackWidth, fallbackHeight
	if term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			tw, th = w, h
		}
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}

func writeSnapshot(w io.Writer, d *demo, width, height int, opts ...ansi.Option) *ansi.Backend {
	dev := ansi.New(w, width, height, opts...)
	runtime.Snapshot(d.root, dev, backend.Style{})
	dev.Show()
	return dev
}
