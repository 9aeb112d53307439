// Package automation drives parameter targets from a Lua script during
// offline renders.
//
// A script defines a global function automate(t) that receives the render
// time in seconds and returns a table with any of the fields gain_db,
// drive, fractal and chaos. Missing fields leave the parameter untouched.
//
//	function automate(t)
//	  return { chaos = 0.5 + 0.5 * math.sin(t), drive = 4 }
//	end
package automation

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
	lua "github.com/yuin/gopher-lua"
)

// FuncName is the global the script must define.
const FuncName = "automate"

// ErrNoAutomateFunc is returned when the script does not define automate.
var ErrNoAutomateFunc = errors.New("automation: script does not define function " + FuncName)

// Step is one evaluation of the script. Nil fields were not returned.
type Step struct {
	GainDB  *float64
	Drive   *float64
	Fractal *float64
	Chaos   *float64
}

// Script is a loaded automation script. It is not safe for concurrent use.
type Script struct {
	state *lua.LState
	fn    *lua.LFunction
}

// Load compiles and runs src, then looks up automate.
func Load(name, src string) (*Script, error) {
	state := newState()

	fn, err := state.LoadString(src)
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("automation: compile %s: %w", name, err)
	}

	state.Push(fn)

	err = state.PCall(0, lua.MultRet, nil)
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("automation: run %s: %w", name, err)
	}

	automate, ok := state.GetGlobal(FuncName).(*lua.LFunction)
	if !ok {
		state.Close()
		return nil, ErrNoAutomateFunc
	}

	return &Script{state: state, fn: automate}, nil
}

// LoadFile reads and loads a script from path.
func LoadFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Load(path, string(src))
}

// newState opens only the libraries a parameter curve needs.
func newState() *lua.LState {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		state.Push(state.NewFunction(lib.open))
		state.Push(lua.LString(lib.name))
		state.Call(1, 0)
	}

	return state
}

// Eval calls automate(t).
func (s *Script) Eval(t float64) (Step, error) {
	err := s.state.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, lua.LNumber(t))
	if err != nil {
		return Step{}, fmt.Errorf("automation: automate(%g): %w", t, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	if ret == lua.LNil {
		return Step{}, nil
	}

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return Step{}, fmt.Errorf("automation: automate(%g) returned %s, want table", t, ret.Type())
	}

	var step Step

	fields := []struct {
		key string
		dst **float64
	}{
		{"gain_db", &step.GainDB},
		{"drive", &step.Drive},
		{"fractal", &step.Fractal},
		{"chaos", &step.Chaos},
	}

	for _, f := range fields {
		v := tbl.RawGetString(f.key)
		if v == lua.LNil {
			continue
		}

		n, ok := v.(lua.LNumber)
		if !ok || !core.IsFinite(float64(n)) {
			return Step{}, fmt.Errorf("automation: field %s must be a finite number, got %s", f.key, v.String())
		}

		x := float64(n)
		*f.dst = &x
	}

	return step, nil
}

// Apply evaluates the script at t and writes the returned fields to set.
func (s *Script) Apply(set *param.Set, t float64) error {
	step, err := s.Eval(t)
	if err != nil {
		return err
	}

	if step.GainDB != nil {
		set.Gain.Set(float32(core.DBToLinear(*step.GainDB)))
	}

	if step.Drive != nil {
		set.Drive.Set(float32(*step.Drive))
	}

	if step.Fractal != nil {
		set.Fractal.Set(float32(*step.Fractal))
	}

	if step.Chaos != nil {
		set.Chaos.Set(float32(*step.Chaos))
	}

	return nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}
