package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/aplab/internal/config"
	"github.com/vk/aplab/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. A nil cfg
// means config.Default(). Logs are printed at the end of the test when
// APLAB_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg *config.Config, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, cfg, modules...)
	if err != nil {
		t.Fatalf("NewApp() failed: %v\n%s", err, logBuffer.String())
	}

	t.Cleanup(func() {
		if os.Getenv("APLAB_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
