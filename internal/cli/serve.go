package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vk/aplab/internal/app"
)

func addServeFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8501", "Address the HTTP server listens on.")
	fs.String("title", "APlab", "Page title shown in the browser.")
	fs.String("default-locale", "en", "Locale used when the browser does not ask for one.")
	fs.Bool("strict-catalog", true, "Refuse to start when a catalog topic has no page.")
	fs.Bool("live", true, "Enable the socket.io live render channel.")
	fs.Duration("session-ttl", 2*time.Hour, "Idle time after which a learner session is dropped.")
}

func newServeCommand(outW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lab over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := app.NewApp(outW, cfg)
			if err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
	addServeFlags(cmd.Flags())
	return cmd
}
