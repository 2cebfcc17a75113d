package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/config"
	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/logger"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/store"
)

// cliEnv is what every command needs: settings, a logger, and the source
// the sets are read from.
type cliEnv struct {
	cfg      *config.Config
	log      *zap.Logger
	src      deck.Source
	location string

	dir   *deck.Dir
	store *store.Store
}

// newCLIEnv loads configuration, applies flag overrides, and opens the
// selected source. Callers must Close the result.
func newCLIEnv(cmd *cobra.Command) (*cliEnv, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("sets-dir"); dir != "" {
		cfg.SetsDir = dir
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ce := &cliEnv{
		cfg:      cfg,
		log:      log,
		dir:      deck.NewDir(cfg.SetsDir),
		location: cfg.SetsDir,
	}
	ce.src = ce.dir

	if useArchive, _ := cmd.Flags().GetBool("archive"); useArchive {
		st, dbPath, err := openArchive(cmd, cfg)
		if err != nil {
			_ = log.Sync()
			return nil, err
		}
		ce.store = st
		ce.src = st.Sets()
		ce.location = dbPath
	}

	log.Debug("runtime ready",
		zap.String("command", cmd.CommandPath()),
		zap.String("source", ce.location),
	)
	return ce, nil
}

// openArchive opens the SQLite archive named by flags and config.
func openArchive(cmd *cobra.Command, cfg *config.Config) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cmd, cfg.ArchivePath)
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open archive: %w", err)
	}
	return st, dbPath, nil
}

// engine returns a session engine over the environment's source.
func (ce *cliEnv) engine() *session.Engine {
	return session.New(ce.src, session.WithLogger(ce.log))
}

func (ce *cliEnv) Close() {
	if ce.store != nil {
		if err := ce.store.Close(); err != nil {
			ce.log.Warn("close archive", zap.Error(err))
		}
	}
	_ = ce.log.Sync()
}
