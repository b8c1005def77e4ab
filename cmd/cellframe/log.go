package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/cellframe/pkg/logging"
)

func newLogCmd(opts *rootOptions) *cobra.Command {
	var (
		count int
		path  string
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the newest events of the latest session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				path, err = logging.LatestSession(cfg.Logging.LogDir())
				if err != nil {
					return err
				}
			}
			events, err := logging.ReadRecentEvents(path, count)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of events to print")
	cmd.Flags().StringVar(&path, "file", "", "Log file to read instead of the latest session")
	return cmd
}

func printEvents(w io.Writer, events []logging.Event) {
	for _, ev := range events {
		fmt.Fprintf(w, "%s %-5s %-6s %s", ev.Timestamp.Format("15:04:05.000"), ev.Level, ev.Category, ev.EventType)
		if ev.Message != "" {
			fmt.Fprintf(w, " %s", ev.Message)
		}
		if len(ev.Details) > 0 {
			keys := make([]string, 0, len(ev.Details))
			for k := range ev.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, len(keys))
			for i, k := range keys {
				pairs[i] = fmt.Sprintf("%s=%v", k, ev.Details[k])
			}
			fmt.Fprintf(w, " [%s]", strings.Join(pairs, " "))
		}
		fmt.Fprintln(w)
	}
}
