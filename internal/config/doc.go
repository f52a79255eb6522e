// Package config loads chordmap settings and keymap files.
//
// Settings and keymaps are read from TOML or YAML, chosen by file
// extension:
//
//	# chordmap.toml
//	keymaps = ["keys.toml"]
//	scripts = ["init.lua"]
//	watch = true
//	ui = "terminal"
//
//	[input]
//	initial_mode = "normal"
//	initial_context = "viewport"
//	leader = "<Space>"
//
//	[log]
//	level = "debug"
//
// A keymap file lists bindings from key sequences to named actions:
//
//	[[bindings]]
//	context = "viewport"
//	mode = "normal"
//	keys = "g g"
//	action = "view.top"
//
// ApplyKeymap registers the bindings in a keymap.Forest. The forest is
// sealed once a dispatcher uses it, so reloads build a new forest and
// swap it in with Dispatcher.ReplaceForest. Watcher reports when the
// files change.
//
// Environment variables with the CHORDMAP_ prefix override file values.
package config
