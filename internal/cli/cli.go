package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vk/aplab/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Version is the build version, overridden with -ldflags at release time.
var Version = "dev"

// configKeys are the flags that map onto config keys. Flag names use dashes,
// config keys use underscores.
var configKeys = map[string]bool{
	"addr":           true,
	"title":          true,
	"icon":           true,
	"layout":         true,
	"default_locale": true,
	"log_level":      true,
	"log_format":     true,
	"session_ttl":    true,
	"sweep_interval": true,
	"strict_catalog": true,
	"live":           true,
}

// NewRootCommand returns the aplab command tree writing to outW. Running it
// without a subcommand serves the lab.
func NewRootCommand(outW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "aplab",
		Short: "APlab - an interactive Python programming lab",
		Long: `APlab serves a catalog of interactive Python lessons in the browser.

Running aplab without a subcommand is the same as "aplab serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML, TOML or JSON config file.")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	serve := newServeCommand(outW)
	addServeFlags(root.Flags())
	root.RunE = serve.RunE

	root.AddCommand(serve, newProbeCommand(outW), newTopicsCommand(outW), newVersionCommand(outW))
	return root
}

// loadConfig resolves the configuration for cmd from its flags, the config
// file and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !configKeys[key] || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, bindErr
	}

	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, file)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}

// exitCode returns the code the process should exit with for err.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Execute runs root with args and returns the exit code, printing any error
// to the command's error stream.
func Execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	return exitCode(err)
}
