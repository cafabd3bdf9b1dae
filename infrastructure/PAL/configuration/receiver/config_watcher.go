package receiver

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// LevelSetter applies a log level while the program runs.
type LevelSetter interface {
	SetLevel(level string) error
}

// ConfigWatcher re-reads the configuration file when it changes and applies
// the new log level. The listen address is never reloaded.
//
// Uses fsnotify for instant updates, with polling as fallback.
type ConfigWatcher struct {
	configManager ConfigurationManager
	levelSetter   LevelSetter
	interval      time.Duration
	logger        zerolog.Logger
	prevLevel     string
}

func NewConfigWatcher(
	configManager ConfigurationManager,
	levelSetter LevelSetter,
	interval time.Duration,
	logger zerolog.Logger,
) *ConfigWatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ConfigWatcher{
		configManager: configManager,
		levelSetter:   levelSetter,
		interval:      interval,
		logger:        logger,
	}
}

// Watch blocks until ctx is cancelled. Without a configuration file it
// returns immediately.
func (w *ConfigWatcher) Watch(ctx context.Context) {
	configPath := w.configManager.Path()
	if configPath == "" {
		return
	}

	w.loadCurrentState()

	// Watch the directory: atomic writes (write to temp, then rename) lose
	// the watch on the original inode.
	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	dir, configFileName := filepath.Split(configPath)
	if dir == "" {
		dir = "."
	}
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer func() {
			_ = watcher.Close()
		}()
		if addErr := watcher.Add(dir); addErr == nil {
			fsEvents = watcher.Events
			fsErrors = watcher.Errors
			w.logger.Debug().Str("dir", dir).Str("file", configFileName).Msg("watching configuration")
		} else {
			w.logger.Warn().Err(addErr).Msg("fsnotify watch failed, using polling")
		}
	} else {
		w.logger.Warn().Err(err).Msg("fsnotify unavailable, using polling")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if filepath.Base(event.Name) != configFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug().Str("op", event.Op.String()).Msg("configuration changed")
				w.configManager.InvalidateCache()
				w.reload()
			}
		case fsErr, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			w.logger.Warn().Err(fsErr).Msg("fsnotify error")
		case <-ticker.C:
			w.reload()
		}
	}
}

func (w *ConfigWatcher) loadCurrentState() {
	conf, err := w.configManager.Configuration()
	if err != nil {
		w.logger.Warn().Err(err).Msg("failed to load initial configuration")
		return
	}
	w.prevLevel = conf.Logging.Level
}

func (w *ConfigWatcher) reload() {
	conf, err := w.configManager.Configuration()
	if err != nil {
		w.logger.Warn().Err(err).Msg("failed to reload configuration")
		return
	}
	if conf.Logging.Level == w.prevLevel {
		return
	}
	if setErr := w.levelSetter.SetLevel(conf.Logging.Level); setErr != nil {
		w.logger.Warn().Err(setErr).Str("level", conf.Logging.Level).Msg("ignoring invalid log level")
		return
	}
	w.logger.Info().Str("from", w.prevLevel).Str("to", conf.Logging.Level).Msg("log level changed")
	w.prevLevel = conf.Logging.Level
}
