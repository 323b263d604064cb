package cmd

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getcreddy/wordforge/pkg/config"
	"github.com/getcreddy/wordforge/pkg/lexicon"
	"github.com/getcreddy/wordforge/pkg/store"
)

// newLogger builds the CLI logger on stderr at the configured level
func newLogger() hclog.Logger {
	level := hclog.LevelFromString(viper.GetString("log_level"))
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "wordforge",
		Level:  level,
		Output: os.Stderr,
	})
}

// dataDir returns the directory holding local state, honouring XDG_DATA_HOME
func dataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "wordforge"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "wordforge"), nil
}

// historyPath returns the run history database path from config or the default location
func historyPath() (string, error) {
	if p := viper.GetString("history.path"); p != "" {
		return p, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// openHistory opens the run history store, creating its directory on first use
func openHistory() (*store.Store, error) {
	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return store.New(path)
}

// loadCatalog returns the built-in lexicon with any overrides from the catalog file applied
func loadCatalog(cmd *cobra.Command) (*lexicon.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	if path == "" {
		return lexicon.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Catalog(lexicon.Default())
}

// intSetting resolves an int from an explicit flag, then config/env, then the flag default
func intSetting(cmd *cobra.Command, flag, key string) int {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}
