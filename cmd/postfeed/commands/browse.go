package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/postfeed/pkg/logging"
	"github.com/Sternrassler/postfeed/pkg/notify"
	"github.com/Sternrassler/postfeed/pkg/todo"
	"github.com/Sternrassler/postfeed/pkg/tui"
)

// browse: the interactive feed and todo list.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the feed in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The terminal belongs to the UI from here on.
			logFile, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return err
			}
			defer logFile.Close()
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(cfg.Log.Level),
				Output: logFile,
			})

			c, err := newClient(cfg)
			if err != nil {
				return err
			}

			store, err := openTodoStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			todos, err := todo.Open(ctx, store)
			if err != nil {
				return err
			}

			status := &tui.StatusNotifier{}
			notifier := notify.Multi{notify.NewLogNotifier(logging.NewLogger("notify")), status}
			coord := newCoordinator(cfg, c, notifier)

			if err := tui.Run(ctx, tui.Options{
				Coordinator:  coord,
				Items:        c,
				Todos:        todos,
				Permissions:  cfg.PermissionService(),
				Status:       status,
				EndThreshold: cfg.Feed.EndThreshold,
			}); err != nil {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			return nil
		},
	}
}
