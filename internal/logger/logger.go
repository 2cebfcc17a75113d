package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/config"
)

// New builds the application logger. Output goes to cfg.LogFile because the
// terminal belongs to the UI; with no log file configured a no-op logger is
// returned.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}

	return zc.Build()
}
