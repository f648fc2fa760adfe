package luahost

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when using a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// GoFunc is a Go callback exposed to Lua. It receives the call's
// arguments coerced to strings and returns one string result. A
// returned error is raised as a Lua error inside the script.
type GoFunc func(args []string) (string, error)

// State is a sandboxed Lua interpreter hosting one feature script.
type State struct {
	L      *lua.LState
	closed bool
}

// NewState creates a sandboxed state with the safe libraries opened.
func NewState() *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	installSandbox(L)
	return &State{L: L}
}

// openSafeLibraries opens the side-effect-free parts of the Lua
// standard library. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes the base-library escape hatches that could
// load code from outside the feature script.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a script file in the state.
func (s *State) DoFile(path string) error {
	if s.closed {
		return ErrStateClosed
	}
	if err := s.L.DoFile(path); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// DoString executes a script string in the state.
func (s *State) DoString(src string) error {
	if s.closed {
		return ErrStateClosed
	}
	if err := s.L.DoString(src); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// RegisterModule exposes a table of Go callbacks to the script as a
// global with the given name.
func (s *State) RegisterModule(name string, funcs map[string]GoFunc) {
	mod := s.L.NewTable()
	for fname, fn := range funcs {
		mod.RawSetString(fname, s.L.NewFunction(wrapGoFunc(fn)))
	}
	s.L.SetGlobal(name, mod)
}

// wrapGoFunc adapts a GoFunc to the gopher-lua calling convention.
func wrapGoFunc(fn GoFunc) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		args := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			args = append(args, lua.LVAsString(L.Get(i)))
		}
		result, err := fn(args)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(result))
		return 1
	}
}

// HasFunction reports whether the script defined a global function with
// the given name.
func (s *State) HasFunction(name string) bool {
	if s.closed {
		return false
	}
	return s.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call invokes a global script function with string arguments and
// returns its first result coerced to a string ("" when the function
// returns nothing).
func (s *State) Call(fn string, args ...string) (result string, err error) {
	if s.closed {
		return "", ErrStateClosed
	}
	fnVal := s.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return "", fmt.Errorf("lua: %q is not a function (got %s)", fn, fnVal.Type())
	}

	top := s.L.GetTop()
	s.L.Push(fnVal)
	for _, arg := range args {
		s.L.Push(lua.LString(arg))
	}

	// PCall panics are converted to errors so a buggy script cannot
	// take down the invocation.
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("lua panic: %v", r)
			}
		}()
		err = s.L.PCall(len(args), lua.MultRet, nil)
	}()
	if err != nil {
		return "", fmt.Errorf("lua: %w", err)
	}

	nret := s.L.GetTop() - top
	if nret > 0 {
		result = lua.LVAsString(s.L.Get(top + 1))
		s.L.Pop(nret)
	}
	return result, nil
}

// Close releases the interpreter. The state is unusable afterwards.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
