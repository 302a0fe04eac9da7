package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arjunmenon/kvcore/internal/buffer"
	"github.com/arjunmenon/kvcore/internal/config"
	"github.com/arjunmenon/kvcore/internal/disk"
	"github.com/arjunmenon/kvcore/internal/walsvc"
)

// engine bundles the collaborators cmd/kvcore's subcommands exercise, built
// from the loaded settings.
type engine struct {
	settings config.Settings
	log      *zap.Logger
	disk     *disk.Manager
	wal      *walsvc.Stub
	pool     *buffer.Pool
}

func newEngine() (*engine, error) {
	s, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(s.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("kvcore: create data dir %s: %w", s.DataDir, err)
	}
	dm, err := disk.Open(filepath.Join(s.DataDir, "pages.db"))
	if err != nil {
		return nil, err
	}

	wal := walsvc.NewStub()
	pool := buffer.New(s.PoolSize, s.ReplacerK, dm, buffer.WithLogger(log), buffer.WithWAL(wal))

	return &engine{settings: s, log: log, disk: dm, wal: wal, pool: pool}, nil
}

func (e *engine) Close() error {
	e.pool.FlushAllPages()
	if err := e.disk.Sync(); err != nil {
		return err
	}
	return e.disk.Close()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("kvcore: bad log level %q: %w", level, err)
	}
	cfg.Encoding = "console"
	return cfg.Build()
}
