package app

import (
	"fmt"
	"strings"

	"github.com/dshills/chordmap/internal/config"
)

func (app *Application) startWatcher() error {
	log := app.logger.WithComponent("watcher")
	w, err := config.NewWatcher(app.loop, app.onConfigChanged,
		config.WithErrorHandler(func(err error) {
			log.Warn("%v", err)
		}),
	)
	if err != nil {
		return err
	}
	if err := w.WatchAll(app.settings.WatchedFiles()); err != nil {
		w.Close()
		return err
	}
	app.watcher = w
	log.Debug("watching %s", strings.Join(w.Files(), ", "))
	return nil
}

// onConfigChanged runs on the UI loop after watched files settle.
func (app *Application) onConfigChanged(changed []string) {
	app.logger.Info("reloading after changes to %s", strings.Join(changed, ", "))
	if err := app.reload(changed); err != nil {
		app.reportBindErrors(err)
		return
	}
	app.ShowMessage("keymaps reloaded")
}

// Reload rebuilds the binding forest from the keymap files and scripts
// and swaps it into the dispatcher. Binding problems are returned but do
// not stop the reload; a failure to swap keeps the previous forest.
func (app *Application) Reload() error {
	return app.reload(nil)
}

func (app *Application) reload(changed []string) error {
	if app.shutdown {
		return ErrShutdown
	}

	forest, engine, bindErr := app.buildForest()
	if err := app.dispatcher.ReplaceForest(forest); err != nil {
		engine.Close()
		return NewComponentError("input", "replace forest", err)
	}

	old := app.engine
	app.engine = engine
	if old != nil {
		if err := old.Close(); err != nil {
			app.logger.WithComponent("lua").Warn("close previous engine: %v", err)
		}
	}
	app.refreshViewport()

	app.bus.Publish(TopicConfigReloaded, ConfigReloaded{
		Changed:  changed,
		Bindings: len(forest.Entries()),
		Err:      bindErr,
	})
	return bindErr
}

// refreshViewport lists the active bindings in the viewport.
func (app *Application) refreshViewport() {
	entries := app.dispatcher.Forest().Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-16s %-12s %-14s %s",
			e.Context, e.Mode, e.Sequence.VimString(), e.Label))
	}
	app.viewport.SetLines(lines)
}

// Shutdown stops timers, the watcher and scripts and closes the
// dispatcher, bus and loop. It is safe to call more than once and must
// be called from the UI goroutine.
func (app *Application) Shutdown() {
	if app.shutdown {
		return
	}
	app.shutdown = true

	app.scheduler.CancelAll()
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.WithComponent("watcher").Warn("close: %v", err)
		}
	}
	app.unsubscribe()
	if app.engine != nil {
		if err := app.engine.Close(); err != nil {
			app.logger.WithComponent("lua").Warn("close: %v", err)
		}
	}
	if app.dispatcher != nil {
		app.dispatcher.Close()
	}
	app.bus.Close()
	app.loop.Close()
	app.Quit()
	app.logger.Info("shut down")
}
