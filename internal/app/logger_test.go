package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantDebug bool
		wantJSON  bool
	}{
		{"debug text", "debug", "text", true, false},
		{"info json", "INFO", "JSON", false, true},
		{"unknown level falls back to info", "chatty", "text", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, tt.format, &buf)

			logger.Debug("debug line")
			logger.Info("info line", "topic", "1.1 Variables")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			if tt.wantJSON {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
				assert.Equal(t, "1.1 Variables", rec["topic"])
			} else {
				assert.Contains(t, buf.String(), `topic="1.1 Variables"`)
			}
		})
	}
}
