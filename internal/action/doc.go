// Package action provides the named actions that keymap files bind keys to.
//
// A keymap entry such as
//
//	[[bindings]]
//	context = "viewport"
//	mode = "normal"
//	keys = "g g"
//	action = "view.top"
//
// names an action in a Registry. The registry turns the action into a
// keymap.Callback. Unknown names are reported with the closest registered
// name as a suggestion.
package action
