// Package luacmd registers shell commands implemented in Lua.
//
// A Loader owns one sandboxed Lua state. Scripts it runs see a small
// `shell` API through which they add entries to a command.Registry;
// the registered functions execute inside the same state when their
// command is dispatched.
//
// gopher-lua's LState is not goroutine-safe. Run the loader and every
// session dispatching into its commands from a single goroutine, or
// synchronize externally.
package luacmd

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/tomschlintz/uP/internal/command"
)

// Loader errors.
var (
	// ErrClosed indicates the loader's Lua state has been shut down.
	ErrClosed = errors.New("luacmd: loader is closed")
)

// Loader runs Lua scripts that register shell commands into a
// registry.
type Loader struct {
	state    *lua.LState
	registry *command.Registry
	closed   bool
}

// NewLoader creates a loader registering into reg. The Lua state opens
// only the base, table, string and math libraries; io, os, debug and
// package stay closed.
func NewLoader(reg *command.Registry) *Loader {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	l := &Loader{state: L, registry: reg}
	l.installAPI()
	return l
}

// openSafeLibraries opens only Lua standard libraries without
// filesystem or process reach.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installAPI exposes the `shell` table to scripts.
func (l *Loader) installAPI() {
	mod := l.state.NewTable()
	l.state.SetField(mod, "register", l.state.NewFunction(l.luaRegister))
	l.state.SetGlobal("shell", mod)
}

// luaRegister implements shell.register(name, help, fn).
func (l *Loader) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	help := L.OptString(2, "")
	fn := L.CheckFunction(3)

	h := &luaHandler{state: l.state, fn: fn}
	if !l.registry.Register(name, h, help, nil) {
		L.RaiseError("shell.register(%q): command table full", name)
	}
	return 0
}

// DoFile runs a Lua script file. Commands it registers stay registered
// even if a later statement in the script fails.
func (l *Loader) DoFile(path string) error {
	if l.closed {
		return ErrClosed
	}
	if err := l.state.DoFile(path); err != nil {
		return fmt.Errorf("luacmd: %s: %w", path, err)
	}
	return nil
}

// DoString runs Lua source text.
func (l *Loader) DoString(src string) error {
	if l.closed {
		return ErrClosed
	}
	if err := l.state.DoString(src); err != nil {
		return fmt.Errorf("luacmd: %w", err)
	}
	return nil
}

// Close shuts down the Lua state. Commands registered by this loader
// must not be dispatched afterwards.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.state.Close()
}

// luaHandler bridges one registered Lua function to the shell's
// Handler interface.
type luaHandler struct {
	state *lua.LState
	fn    *lua.LFunction
}

// Handle calls the Lua function with (command, params table). A string
// return value, if any, is written back to the user.
func (h *luaHandler) Handle(inv command.Invocation) {
	params := h.state.NewTable()
	for _, p := range inv.Params {
		params.Append(lua.LString(p))
	}

	err := h.state.CallByParam(lua.P{
		Fn:      h.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(inv.Command), params)
	if err != nil {
		inv.Reply("%s: %v", inv.Command, err)
		return
	}

	ret := h.state.Get(-1)
	h.state.Pop(1)
	if s, ok := ret.(lua.LString); ok && s != "" {
		inv.Reply("%s", string(s))
	}
}
