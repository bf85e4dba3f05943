package binding

import (
	"fmt"

	"github.com/pengelbrecht/calc/internal/calculator"
)

// Arity is the number of arguments every entry point takes.
const Arity = 2

// Func is the typed signature shared by all arithmetic operations.
type Func func(a, b float64) float64

// Entry maps an entry point name to its arithmetic function.
type Entry struct {
	// Name is the entry point exposed to host environments.
	Name string
	// Short is the operation token accepted by the command line.
	Short string
	// Symbol is the infix operator used when rendering a call.
	Symbol string
	// Doc is a one-line description.
	Doc string
	// Fn is the arithmetic function.
	Fn Func
}

var entries = [...]Entry{
	{Name: "add", Short: "add", Symbol: "+", Doc: "Add two numbers", Fn: calculator.Add},
	{Name: "sub", Short: "sub", Symbol: "-", Doc: "Subtract two numbers", Fn: calculator.Sub},
	{Name: "mul", Short: "mul", Symbol: "*", Doc: "Multiply two numbers", Fn: calculator.Mul},
	{Name: "divide", Short: "div", Symbol: "/", Doc: "Divide two numbers (0.0 when the divisor is zero)", Fn: calculator.Divide},
}

// Entries returns the registry in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// Lookup returns the entry whose Name is name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve is like Lookup but also accepts the Short and Symbol forms.
func Resolve(token string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == token || e.Short == token || e.Symbol == token {
			return e, true
		}
	}
	return Entry{}, false
}

// Call validates args and applies the entry's function.
func (e Entry) Call(args ...any) (float64, error) {
	a, b, err := Operands(e.Name, args)
	if err != nil {
		return 0, err
	}
	return e.Fn(a, b), nil
}

// Call invokes the entry point name with dynamically-typed args.
func Call(name string, args ...any) (float64, error) {
	e, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return e.Call(args...)
}
