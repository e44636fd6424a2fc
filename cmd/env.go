package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/config"
	"github.com/drillq/drillq/internal/logging"
	"github.com/drillq/drillq/internal/practice"
	"github.com/drillq/drillq/internal/store"
)

// env is everything a command needs to drive the practice loop.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *practice.Service
}

func (e *env) Close() error {
	_ = e.logger.Sync()
	return e.store.Close()
}

// setupOpts tunes setup per command.
type setupOpts struct {
	// quietLogs drops log output unless a log file is configured, for
	// commands that own the terminal or print reports.
	quietLogs bool
	// readOnly resumes the latest session without ever saving one.
	readOnly bool
}

// setup loads config, applies flag overrides, opens the store and resumes
// the latest session.
func setup(cmd *cobra.Command, opts setupOpts) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := zap.NewNop()
	if !opts.quietLogs || cfg.Log.File != "" {
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, err
		}
	}

	cat, err := loadCatalog(cmd, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	svc := practice.New(practice.Options{
		Catalog:      cat,
		Sessions:     st.SessionRepo(),
		Events:       st.EventRepo(),
		Logger:       logger,
		KeepSessions: cfg.Drill.KeepSessions,
	})
	open := svc.Open
	if opts.readOnly {
		open = svc.Peek
	}
	if err := open(cmd.Context()); err != nil {
		return nil, errors.Join(err, st.Close())
	}

	return &env{cfg: cfg, logger: logger, store: st, svc: svc}, nil
}

// loadCatalog loads --catalog, then the configured path, then the built-in
// dataset.
func loadCatalog(cmd *cobra.Command, configured string) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = configured
	}
	if path == "" {
		return catalog.Builtin()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// filterFlags registers the catalog filter flags on c.
func filterFlags(c *cobra.Command) {
	c.Flags().String("sport", "", "Only drill this sport: baseball or softball")
	c.Flags().String("level", "", "Only drill this level: youth, high_school, college or adult")
	c.Flags().String("category", "", "Only drill this category, e.g. cutoffs")
	c.Flags().String("position", "", "Only drill this position, e.g. SS")
}

// filterFromFlags reads and validates the filter flags.
func filterFromFlags(cmd *cobra.Command) (catalog.Filter, error) {
	str := func(name string) string {
		if cmd.Flags().Lookup(name) == nil {
			return ""
		}
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return catalog.ParseFilter(str("sport"), str("level"), str("category"), str("position"))
}
