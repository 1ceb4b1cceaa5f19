package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/aplab/internal/app"
	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/probe"
)

func newProbeCommand(outW io.Writer) *cobra.Command {
	var (
		o          probe.Options
		values     []string
		skipHealth bool
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Render one topic over the live channel of a running server",
		Long: `probe connects to a running aplab server over socket.io, asks it to
render one topic and reports the outcome. It exits non-zero when the
server cannot be reached or the render fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			logger := app.NewLogger(level, format, cmd.ErrOrStderr())

			var err error
			o.Values, err = parseValues(values)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}

			ctx := ctxlog.WithLogger(cmd.Context(), logger)
			if !skipHealth {
				if err := probe.CheckHealth(ctx, probe.HTTPClient(o), o.URL); err != nil {
					return fmt.Errorf("server is not healthy: %w", err)
				}
				logger.Debug("Health check passed.")
			}
			res, err := probe.Run(ctx, o)
			if err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}
			return report(outW, res)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.URL, "url", "http://localhost:8501", "Base URL of the aplab server.")
	fs.StringVar(&o.Category, "category", "", "Category label; empty means the first one.")
	fs.StringVar(&o.Topic, "topic", "", "Topic label; empty means the first of the category.")
	fs.StringVar(&o.Lang, "lang", "en", "Locale to render in.")
	fs.StringArrayVar(&values, "value", nil, "Widget value as key=value; repeatable.")
	fs.StringVar(&o.Clicked, "click", "", "Key of the button to press.")
	fs.DurationVar(&o.Timeout, "timeout", 10*time.Second, "How long to wait for the answer.")
	fs.BoolVar(&o.InsecureSkipVerify, "insecure", false, "Skip TLS certificate verification.")
	fs.BoolVar(&skipHealth, "skip-health", false, "Do not call /health before connecting.")
	return cmd
}

func parseValues(raw []string) (map[string][]string, error) {
	out := make(map[string][]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --value %q, want key=value", kv)
		}
		out[k] = append(out[k], v)
	}
	return out, nil
}

func report(w io.Writer, res *probe.Result) error {
	r := res.Response
	fmt.Fprintf(w, "%s / %s (%s) in %s\n", r.Category, r.Topic, r.Locator, res.Elapsed.Round(time.Millisecond))
	if !r.OK {
		return &ExitError{Code: 1, Message: "render failed: " + r.Message}
	}
	fmt.Fprintf(w, "OK, %d bytes of HTML\n", len(r.HTML))
	return nil
}

