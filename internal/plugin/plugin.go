// Package plugin runs user-supplied Lua scripts that extend the keypad
// with custom unary functions, typically a tax or rounding key bound to
// LINK.
//
// A script defines plain global functions taking and returning a number:
//
//	function tax(v)
//	    return v * 1.19
//	end
//
// The Lua state is not goroutine-safe; a mutex serializes calls.
package plugin

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Plugin errors.
var (
	ErrNotLoaded       = errors.New("no script loaded")
	ErrUnknownFunction = errors.New("unknown script function")
	ErrBadReturn       = errors.New("script function must return a number")
)

// Registry loads a Lua script and exposes its functions to the engine.
type Registry struct {
	mu sync.Mutex
	ls *lua.LState
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load runs the script at path, replacing any previously loaded script.
func (r *Registry) Load(path string) error {
	ls := lua.NewState()
	if err := ls.DoFile(path); err != nil {
		ls.Close()
		return fmt.Errorf("load script %s: %w", path, err)
	}

	r.mu.Lock()
	if r.ls != nil {
		r.ls.Close()
	}
	r.ls = ls
	r.mu.Unlock()
	return nil
}

// LoadString runs an inline script, replacing any previously loaded one.
func (r *Registry) LoadString(src string) error {
	ls := lua.NewState()
	if err := ls.DoString(src); err != nil {
		ls.Close()
		return fmt.Errorf("load script: %w", err)
	}

	r.mu.Lock()
	if r.ls != nil {
		r.ls.Close()
	}
	r.ls = ls
	r.mu.Unlock()
	return nil
}

// Close releases the Lua state.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ls != nil {
		r.ls.Close()
		r.ls = nil
	}
}

// Has reports whether the loaded script defines the named function.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ls == nil {
		return false
	}
	_, ok := r.ls.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Call invokes the named script function with one number argument.
func (r *Registry) Call(name string, v float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ls == nil {
		return 0, ErrNotLoaded
	}
	fn, ok := r.ls.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	err := r.ls.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(v))
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", name, err)
	}

	ret := r.ls.Get(-1)
	r.ls.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: %s returned %s", ErrBadReturn, name, ret.Type())
	}
	return float64(num), nil
}

// Func adapts a script function to the engine's LINK binding.
func (r *Registry) Func(name string) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		return r.Call(name, v)
	}
}
