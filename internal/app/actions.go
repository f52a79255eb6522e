package app

import (
	"fmt"

	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
)

// Application action names.
const (
	ActionViewDown       = "view.down"
	ActionViewUp         = "view.up"
	ActionViewTop        = "view.top"
	ActionViewBottom     = "view.bottom"
	ActionViewHalfDown   = "view.half-down"
	ActionViewHalfUp     = "view.half-up"
	ActionContextNext    = "context.next"
	ActionContextPrev    = "context.prev"
	ActionKeysDescribe   = "keys.describe"
	ActionMessageMetrics = "message.metrics"
)

func (app *Application) registerActions() error {
	view := func(fn func()) func() error {
		return func() error {
			fn()
			return nil
		}
	}
	v := app.viewport
	for _, a := range []action.Action{
		action.Plain(ActionViewDown, "Move down one line", view(func() { v.Down(1) })),
		action.Plain(ActionViewUp, "Move up one line", view(func() { v.Up(1) })),
		action.Plain(ActionViewTop, "Go to the first line", view(v.Top)),
		action.Plain(ActionViewBottom, "Go to the last line", view(v.Bottom)),
		action.Plain(ActionViewHalfDown, "Scroll half a screen down", view(v.HalfDown)),
		action.Plain(ActionViewHalfUp, "Scroll half a screen up", view(v.HalfUp)),
		action.Plain(ActionContextNext, "Focus the next context", func() error { return app.cycleContext(1) }),
		action.Plain(ActionContextPrev, "Focus the previous context", func() error { return app.cycleContext(-1) }),
		action.Plain(ActionKeysDescribe, "Describe the next key", app.describeNextKey),
		action.Plain(ActionMessageMetrics, "Show input metrics", app.showMetrics),
	} {
		if err := app.actions.Register(a); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) cycleContext(step int) error {
	all := keymap.Contexts()
	i := (int(app.Context()) + step + len(all)) % len(all)
	if err := app.SetContext(all[i]); err != nil {
		return err
	}
	app.ShowMessage("context: " + all[i].String())
	return nil
}

func (app *Application) describeNextKey() error {
	app.dispatcher.Possess(&describer{app: app})
	app.ShowMessage("press a key to describe")
	return nil
}

func (app *Application) showMetrics() error {
	m := app.dispatcher.Metrics().Snapshot()
	app.ShowMessage(fmt.Sprintf("keys %d, handled %d, unhandled %d, pending %d, passthrough %d",
		m.KeyDowns, m.Handled, m.Unhandled, m.Pending, m.Passthrough))
	return nil
}

// describer possesses the dispatcher for one key and reports what that
// key is bound to as the first chord of a sequence.
type describer struct {
	app *Application
}

func (d *describer) PossessedKeyDown(ev key.Event) {
	app := d.app
	c := ev.Chord()
	seq := key.SequenceOf(c)
	node, tier, ok := app.dispatcher.Forest().Resolve(app.Context(), app.Mode(), seq)
	switch {
	case !ok:
		app.ShowMessage(fmt.Sprintf("%s is not bound", c.VimString()))
	case node.IsTerminal():
		app.ShowMessage(fmt.Sprintf("%s runs %s (%s/%s)", c.VimString(), node.Label, tier.Context, tier.Mode))
	default:
		app.ShowMessage(fmt.Sprintf("%s is a prefix, %d keys may follow (%s/%s)", c.VimString(), node.Len(), tier.Context, tier.Mode))
	}
	app.dispatcher.Unpossess()
}

func (d *describer) Dispossessed() {}
