package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/symtree/internal/adapters/fsnotify"
)

// rebuildSettle is how long a change batch is allowed to grow before the
// rescan runs. Saves that touch many files (formatters, branch switches)
// collapse into one rebuild.
const rebuildSettle = 250 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan and reprint the tree on file changes",
	Long:  "Runs a scan, then watches the repository and rebuilds the full tree after each batch of changes. Interrupt to stop.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := targetDir(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rebuild := func() {
		out, err := scanOnce(ctx, root, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Print(out)
	}

	rebuild()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	changes := make(chan string, 64)
	err = w.Watch(root, func(path string) {
		select {
		case changes <- path:
		default:
		}
	})
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Watching %s for changes...\n", root)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			settle := time.NewTimer(rebuildSettle)
		drain:
			for {
				select {
				case <-changes:
				case <-settle.C:
					break drain
				case <-ctx.Done():
					settle.Stop()
					return nil
				}
			}
			if !cfg.Quiet {
				fmt.Fprintln(os.Stderr, "Change detected, rescanning...")
			}
			rebuild()
		}
	}
}
