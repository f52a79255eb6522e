// Package mode provides the modal state machine for chordmap.
//
// Four live modes exist:
//   - Normal: keys are matched against bindings
//   - Insert: keys pass through to the host (Escape excepted)
//   - Visual: character-wise selection
//   - VisualLine: line-wise selection
//
// Any is a fifth value that only appears in bindings and matches every
// live mode.
//
// # Transitions
//
//	Normal ──i──▶ Insert
//	Normal ──v──▶ Visual
//	Normal ──V──▶ VisualLine
//	any    ─Esc─▶ Normal
//
// Every other transition is made by bound callbacks through
// Controller.SetMode. Each SetMode call notifies the registered
// ChangeCallbacks, including calls that do not change the mode.
package mode
