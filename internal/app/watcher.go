package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/corey/xcprojlint/internal/ports"
)

// Watch lints the project once, then again every time the project file or
// the lint config changes, until ctx is cancelled. onResult receives every
// outcome, including failures; a bad save is reported and watching goes on.
func (a *App) Watch(ctx context.Context, w ports.Watcher, onResult func(*Result, error)) error {
	onResult(a.Lint(ctx))

	configPath, err := filepath.Abs(a.cfg.ConfigPath)
	if err != nil {
		return err
	}
	err = w.Watch([]string{a.Paths.Project, configPath}, func(changed string) {
		if ctx.Err() != nil {
			return
		}
		if changed == configPath {
			if err := a.reloadConfig(); err != nil {
				onResult(nil, err)
			}
		}
		onResult(a.Lint(ctx))
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.Paths.Project, err)
	}

	<-ctx.Done()
	return w.Stop()
}

// reloadConfig reloads the lint config. A broken config keeps the previous
// one in effect.
func (a *App) reloadConfig() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.loadConfig(); err != nil {
		a.Logger.Warn("config reload failed, keeping previous", "path", a.cfg.ConfigPath, "err", err)
		return err
	}
	a.Logger.Info("config reloaded", "path", a.cfg.ConfigPath)
	return nil
}
