package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/config"
)

func TestNew_NoFile(t *testing.T) {
	log, err := New(&config.Config{})
	require.NoError(t, err)
	log.Info("discarded")
}

func TestNew_WritesFile(t *testing.T) {
	for _, env := range []string{"local", "production"} {
		t.Run(env, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "flashquiz.log")
			log, err := New(&config.Config{Env: env, LogFile: path})
			require.NoError(t, err)

			log.Info("set loaded")
			_ = log.Sync()

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(raw), "set loaded")
		})
	}
}
