package site

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Store holds the current site record. Records are swapped whole on reload so
// readers always see a complete, validated value.
type Store struct {
	path     string
	logger   *slog.Logger
	current  atomic.Pointer[Site]
	onReload []func(Site)
}

// NewStore loads the record from path (see Load) and returns a store serving it.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	st := &Store{path: path, logger: logger}
	st.current.Store(&s)

	return st, nil
}

// Current returns a copy of the current record.
func (st *Store) Current() Site {
	return *st.current.Load()
}

// Path returns the override file backing the store, if any.
func (st *Store) Path() string {
	return st.path
}

// OnReload registers fn to run after every successful reload. Register
// callbacks before calling Watch.
func (st *Store) OnReload(fn func(Site)) {
	st.onReload = append(st.onReload, fn)
}

// Reload re-reads the override file. On failure the previous record is kept.
func (st *Store) Reload() error {
	s, err := Load(st.path)
	if err != nil {
		st.logger.Warn("site reload rejected, keeping previous record",
			slog.String("file", st.path),
			slog.String("error", err.Error()))
		return err
	}

	st.current.Store(&s)
	st.logger.Info("site record reloaded", slog.String("file", st.path))
	for _, fn := range st.onReload {
		fn(s)
	}

	return nil
}

// Watch reloads the record whenever the override file changes, until ctx is
// cancelled. It is a no-op for a store without a file.
func (st *Store) Watch(ctx context.Context) {
	if st.path == "" {
		st.logger.Debug("no site file configured, nothing to watch")
		return
	}

	v := viper.New()
	v.SetConfigFile(st.path)
	if err := v.ReadInConfig(); err != nil {
		st.logger.Error("failed to watch site file",
			slog.String("file", st.path),
			slog.String("error", err.Error()))
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if ctx.Err() != nil {
			return
		}
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		_ = st.Reload()
	})
	v.WatchConfig()

	st.logger.Info("watching site file", slog.String("file", st.path))
}
