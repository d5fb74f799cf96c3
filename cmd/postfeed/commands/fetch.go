package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/postfeed/pkg/logging"
	"github.com/Sternrassler/postfeed/pkg/notify"
	"github.com/Sternrassler/postfeed/pkg/pagination"
	"github.com/Sternrassler/postfeed/pkg/permission"
)

// fetch: page through the feed without a terminal UI.
func fetchCmd() *cobra.Command {
	var maxPages int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Page through the feed and print posts as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cfg)
			if err != nil {
				return err
			}
			notifier := notify.NewLogNotifier(logging.NewLogger("notify"))
			coord := newCoordinator(cfg, c, notifier)

			return runFetch(cmd.Context(), coord, cfg.PermissionService(), cmd.OutOrStdout(), maxPages)
		},
	}
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 means until exhausted)")
	return cmd
}

// runFetch mounts coord and requests pages until the feed is exhausted or
// maxPages pages have merged, writing each new item to w.
func runFetch(ctx context.Context, coord *pagination.Coordinator, perms permission.Service, w io.Writer, maxPages int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	enc := json.NewEncoder(w)
	written := 0

	flush := func() error {
		items := coord.Snapshot().Items
		for _, item := range items[written:] {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("write item %d: %w", item.ID, err)
			}
		}
		written = len(items)
		return nil
	}

	outcome := coord.Mount(ctx, perms)
	pages := 0
	for {
		switch outcome {
		case pagination.OutcomeFetched:
			pages++
			if err := flush(); err != nil {
				return err
			}
		case pagination.OutcomeFailed:
			return fmt.Errorf("fetch page: %w", coord.Snapshot().LastErr)
		case pagination.OutcomeDenied:
			return fmt.Errorf("permission denied and fetching without permission is disabled")
		case pagination.OutcomeExhausted:
			log.Info().Int("pages", pages).Int("items", written).Msg("Feed exhausted")
			return nil
		}

		if maxPages > 0 && pages >= maxPages {
			log.Info().Int("pages", pages).Int("items", written).Msg("Page limit reached")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome = coord.OnEndReached(ctx)
	}
}
