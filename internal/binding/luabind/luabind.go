// Package luabind exposes the calc module to Lua scripts.
//
// Scripts see a global table named calc (also available through
// require "calc") holding add, sub, mul and divide:
//
//	print(calc.add(2, 3))      --> 5
//	print(calc.divide(5, 0))   --> 0
//	print(pcall(calc.mul, "2", 3))
//	--> false  mul: argument 1 must be a number, not string
//
// Only Lua numbers are accepted. Numeric strings are rejected rather than
// coerced.
package luabind

import (
	"fmt"
	"io"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/pengelbrecht/calc/internal/binding"
)

// ModuleName is the name of the global table and of the required module.
const ModuleName = "calc"

var library = registryFunctions()

func registryFunctions() []lua.RegistryFunction {
	entries := binding.Entries()
	fns := make([]lua.RegistryFunction, 0, len(entries))
	for _, e := range entries {
		fns = append(fns, lua.RegistryFunction{Name: e.Name, Function: wrap(e)})
	}
	return fns
}

// Open loads the calc module into l and sets the global calc.
func Open(l *lua.State) {
	lua.Require(l, ModuleName, openModule, true)
	l.Pop(1)
}

func openModule(l *lua.State) int {
	lua.NewLibrary(l, library)
	return 1
}

// NewState returns a state with the standard libraries and calc loaded.
// print writes to w.
func NewState(w io.Writer) *lua.State {
	l := lua.NewState()
	lua.OpenLibraries(l)
	Open(l)
	l.Register("print", printTo(w))
	return l
}

// Eval runs chunk in l and returns the numbers it returns.
func Eval(l *lua.State, chunk string) ([]float64, error) {
	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadString(l, chunk); err != nil {
		return nil, fmt.Errorf("load lua: %w", withMessage(l, err))
	}
	if err := l.ProtectedCall(0, lua.MultipleReturns, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", withMessage(l, err))
	}
	return results(l, top)
}

// RunFile runs the script at path in l and returns the numbers it returns.
func RunFile(l *lua.State, path string) ([]float64, error) {
	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadFile(l, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", withMessage(l, err))
	}
	if err := l.ProtectedCall(0, lua.MultipleReturns, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", withMessage(l, err))
	}
	return results(l, top)
}

// withMessage attaches the error value left on the stack when err does not
// already carry it.
func withMessage(l *lua.State, err error) error {
	msg, ok := l.ToString(-1)
	if !ok || msg == "" || strings.Contains(err.Error(), msg) {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}

func results(l *lua.State, top int) ([]float64, error) {
	var out []float64
	for i := top + 1; i <= l.Top(); i++ {
		if l.TypeOf(i) != lua.TypeNumber {
			return nil, fmt.Errorf("script returned %s, want number", lua.TypeNameOf(l, i))
		}
		n, _ := l.ToNumber(i)
		out = append(out, n)
	}
	return out, nil
}

func wrap(e binding.Entry) lua.Function {
	return func(l *lua.State) int {
		a, b, err := operands(l, e.Name)
		if err != nil {
			lua.Errorf(l, "%s", err.Error())
			return 0
		}
		l.PushNumber(e.Fn(a, b))
		return 1
	}
}

func operands(l *lua.State, name string) (float64, float64, error) {
	if n := l.Top(); n != binding.Arity {
		return 0, 0, binding.NewArityError(name, n)
	}
	var out [binding.Arity]float64
	for i := 1; i <= binding.Arity; i++ {
		if l.TypeOf(i) != lua.TypeNumber {
			return 0, 0, binding.NewTypeError(name, i, lua.TypeNameOf(l, i))
		}
		out[i-1], _ = l.ToNumber(i)
	}
	return out[0], out[1], nil
}

func printTo(w io.Writer) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		for i := 1; i <= n; i++ {
			s, _ := lua.ToStringMeta(l, i)
			l.Pop(1)
			if i > 1 {
				io.WriteString(w, "\t")
			}
			io.WriteString(w, s)
		}
		io.WriteString(w, "\n")
		return 0
	}
}
