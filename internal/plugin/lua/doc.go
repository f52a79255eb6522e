// Package lua runs Lua scripts that add key bindings.
//
// Scripts use the preloaded "modal" module:
//
//	local modal = require("modal")
//
//	modal.bind("viewport", "normal", "z z", function(keys)
//	    modal.log("centered after " .. keys)
//	end)
//	modal.bind("generic", "normal", "<leader>q", "app.quit")
//	modal.bind("generic", "visual", "x", function()
//	    modal.set_mode("normal")
//	    modal.set_mode_after("insert", 500)
//	end, "Cut")
//
//	if modal.mode() == "insert" then
//	    modal.message("typing")
//	end
//
// modal is also set as a global. modal.bind takes a context, a mode, a key
// sequence and either a Lua function, which receives the matched keys in
// Vim notation, or the name of a registered action. Bindings made while a
// script runs are collected by the Engine and registered into a forest
// with Engine.Apply.
//
// The state is sandboxed: io, os, debug, dofile, loadfile and load are
// unavailable, and require only resolves safe standard modules and modal.
package lua
