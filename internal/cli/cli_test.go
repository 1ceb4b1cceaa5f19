package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "-h")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--strict-catalog")
	for _, sub := range []string{"serve", "probe", "topics", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestUnknownFlag_ExitCode2(t *testing.T) {
	_, err := execute(t, "--no-such-flag")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, 2, exitCode(err))
}

func TestTopics_CatalogOrder(t *testing.T) {
	out, err := execute(t, "topics")
	require.NoError(t, err)

	want := []string{
		"0. Programming Fundamentals",
		"0.1 Programming Basics",
		"1. Python Basics",
		"1.1 Variables",
		"1.2 Data Types",
		"1.3 Operations",
		"2. Control Flow",
		"3. Data Structures",
		"3.3 Sets",
	}
	last := -1
	for _, label := range want {
		i := strings.Index(out, label)
		require.GreaterOrEqual(t, i, 0, "missing %q", label)
		assert.Greater(t, i, last, "%q out of order", label)
		last = i
	}
	assert.Contains(t, out, "aplab.topics.t01_basics.t01_variables")
}

func TestTopics_Localised(t *testing.T) {
	out, err := execute(t, "topics", "--lang", "ru")
	require.NoError(t, err)
	assert.Contains(t, out, "1.1 Переменные")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "aplab "+Version))
}

func configFor(t *testing.T, args ...string) (*cobra.Command, error) {
	t.Helper()
	var captured *cobra.Command
	root := NewRootCommand(&bytes.Buffer{})
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		captured = cmd
		return nil
	}
	root.SetArgs(args)
	err := root.Execute()
	return captured, err
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "aplab.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: From File\naddr: \":9000\"\nsession_ttl: 30m\n"), 0o600))
	t.Setenv("APLAB_ADDR", ":9100")

	cmd, err := configFor(t, "--config", file, "--title", "From Flag")
	require.NoError(t, err)
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "From Flag", cfg.Title, "flag beats file")
	assert.Equal(t, ":9100", cfg.Addr, "env beats file")
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "en", cfg.DefaultLocale, "built-in default")
}

func TestLoadConfig_InvalidIsExitCode2(t *testing.T) {
	cmd, err := configFor(t, "--log-level", "loud")
	require.NoError(t, err)

	_, err = loadConfig(cmd)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log_level")
}

func TestParseValues(t *testing.T) {
	got, err := parseValues([]string{"x=7", "tags=a", "tags=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"x": {"7"}, "tags": {"a", "b"}, "empty": {""}}, got)

	_, err = parseValues([]string{"novalue"})
	assert.Error(t, err)
}
