package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/postfeed/pkg/config"
	"github.com/Sternrassler/postfeed/pkg/logging"
)

var (
	cfgPath  string
	logLevel string
	pretty   bool

	cfg config.Config
)

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "postfeed",
		Short:         "Browse a paginated post feed and keep a todo list",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, optional := cfgPath, false
			if path == "" {
				path, optional = config.DefaultPath(), true
			}

			loaded, err := config.Load(path, optional)
			if err != nil {
				return err
			}
			if logLevel != "" {
				if !logging.ValidLevel(logging.LogLevel(logLevel)) {
					return fmt.Errorf("unknown log level %q", logLevel)
				}
				loaded.Log.Level = logLevel
			}
			if pretty {
				loaded.Log.Pretty = true
			}
			cfg = loaded

			logging.Setup(logging.Config{
				Level:  logging.LogLevel(cfg.Log.Level),
				Pretty: cfg.Log.Pretty,
				Output: os.Stderr,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/postfeed/config.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error or disabled")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable log output")

	root.AddCommand(browseCmd(), fetchCmd(), todoCmd(), serveMetricsCmd())
	return root
}
