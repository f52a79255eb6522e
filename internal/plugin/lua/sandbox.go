package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// allowedModulesKey is the registry field holding the require whitelist.
const allowedModulesKey = "chordmap.allowed_modules"

// openSafeLibraries opens only safe Lua standard libraries. io, os,
// debug and channel are never opened.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.CoroutineLibName, lua.OpenCoroutine},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes file loading and restricts require.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	allowed := L.NewTable()
	for _, name := range []string{"string", "table", "math", "coroutine"} {
		allowed.RawSetString(name, lua.LTrue)
	}
	L.SetField(L.Get(lua.RegistryIndex), allowedModulesKey, allowed)

	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !moduleAllowed(L, name) {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

func allowModule(L *lua.LState, name string) {
	if allowed, ok := L.GetField(L.Get(lua.RegistryIndex), allowedModulesKey).(*lua.LTable); ok {
		allowed.RawSetString(name, lua.LTrue)
	}
}

func moduleAllowed(L *lua.LState, name string) bool {
	allowed, ok := L.GetField(L.Get(lua.RegistryIndex), allowedModulesKey).(*lua.LTable)
	return ok && allowed.RawGetString(name) == lua.LTrue
}
