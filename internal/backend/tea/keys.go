package tea

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/chordmap/internal/input/key"
)

type special struct {
	key  key.Key
	mods key.Modifier
}

// specialKeys maps Bubble Tea key types to chordmap keys. Bubble Tea
// gives Tab, Enter and Escape the same codes as Ctrl+I, Ctrl+M and
// Ctrl+[; those codes are reported as the named key.
var specialKeys = map[tea.KeyType]special{
	tea.KeyEnter:          {key.KeyEnter, key.ModNone},
	tea.KeyTab:            {key.KeyTab, key.ModNone},
	tea.KeyShiftTab:       {key.KeyTab, key.ModShift},
	tea.KeyBackspace:      {key.KeyBackspace, key.ModNone},
	tea.KeyDelete:         {key.KeyDelete, key.ModNone},
	tea.KeyInsert:         {key.KeyInsert, key.ModNone},
	tea.KeyHome:           {key.KeyHome, key.ModNone},
	tea.KeyEnd:            {key.KeyEnd, key.ModNone},
	tea.KeyPgUp:           {key.KeyPageUp, key.ModNone},
	tea.KeyPgDown:         {key.KeyPageDown, key.ModNone},
	tea.KeyUp:             {key.KeyUp, key.ModNone},
	tea.KeyDown:           {key.KeyDown, key.ModNone},
	tea.KeyLeft:           {key.KeyLeft, key.ModNone},
	tea.KeyRight:          {key.KeyRight, key.ModNone},
	tea.KeyShiftUp:        {key.KeyUp, key.ModShift},
	tea.KeyShiftDown:      {key.KeyDown, key.ModShift},
	tea.KeyShiftLeft:      {key.KeyLeft, key.ModShift},
	tea.KeyShiftRight:     {key.KeyRight, key.ModShift},
	tea.KeyCtrlUp:         {key.KeyUp, key.ModCtrl},
	tea.KeyCtrlDown:       {key.KeyDown, key.ModCtrl},
	tea.KeyCtrlLeft:       {key.KeyLeft, key.ModCtrl},
	tea.KeyCtrlRight:      {key.KeyRight, key.ModCtrl},
	tea.KeyCtrlShiftUp:    {key.KeyUp, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftDown:  {key.KeyDown, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftLeft:  {key.KeyLeft, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftRight: {key.KeyRight, key.ModCtrl | key.ModShift},
	tea.KeyCtrlAt:         {key.KeySpace, key.ModCtrl},
	tea.KeyF1:             {key.KeyF1, key.ModNone},
	tea.KeyF2:             {key.KeyF2, key.ModNone},
	tea.KeyF3:             {key.KeyF3, key.ModNone},
	tea.KeyF4:             {key.KeyF4, key.ModNone},
	tea.KeyF5:             {key.KeyF5, key.ModNone},
	tea.KeyF6:             {key.KeyF6, key.ModNone},
	tea.KeyF7:             {key.KeyF7, key.ModNone},
	tea.KeyF8:             {key.KeyF8, key.ModNone},
	tea.KeyF9:             {key.KeyF9, key.ModNone},
	tea.KeyF10:            {key.KeyF10, key.ModNone},
	tea.KeyF11:            {key.KeyF11, key.ModNone},
	tea.KeyF12:            {key.KeyF12, key.ModNone},
}

// convertKey converts a Bubble Tea key message. It returns false for
// pastes and keys chordmap has no name for.
func convertKey(msg tea.KeyMsg) (key.Event, bool) {
	if msg.Paste {
		return key.Event{}, false
	}
	var alt key.Modifier
	if msg.Alt {
		alt = key.ModAlt
	}

	switch msg.Type {
	case tea.KeyEsc:
		// Terminals cannot report Shift+Escape to Bubble Tea, so
		// Alt+Escape stands in for it.
		if msg.Alt {
			return key.NewSpecialEvent(key.KeyEscape, key.ModShift), true
		}
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone), true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return key.Event{}, false
		}
		return key.NewRuneEvent(msg.Runes[0], alt), true
	case tea.KeySpace:
		return key.NewRuneEvent(' ', alt), true
	}

	if s, ok := specialKeys[msg.Type]; ok {
		return key.NewSpecialEvent(s.key, s.mods|alt), true
	}

	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return key.NewRuneEvent(r, alt|key.ModCtrl), true
	}
	return key.Event{}, false
}
