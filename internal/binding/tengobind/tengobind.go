// Package tengobind exposes the calc module to Tengo scripts:
//
//	calc := import("calc")
//	result := calc.divide(6, 3)
package tengobind

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/pengelbrecht/calc/internal/binding"
)

// ModuleName is the import name of the calc module.
const ModuleName = "calc"

// ResultVar is the global a script assigns to report its result.
const ResultVar = "result"

// Module returns the attributes of the calc builtin module.
func Module() map[string]tengo.Object {
	entries := binding.Entries()
	attrs := make(map[string]tengo.Object, len(entries))
	for _, e := range entries {
		attrs[e.Name] = &tengo.UserFunction{Name: e.Name, Value: wrap(e)}
	}
	return attrs
}

// Modules returns the importable modules: calc plus the fmt and math
// standard modules.
func Modules() *tengo.ModuleMap {
	mods := stdlib.GetModuleMap("fmt", "math")
	mods.AddBuiltinModule(ModuleName, Module())
	return mods
}

// Result holds what a script left in ResultVar.
type Result struct {
	Value float64
	Set   bool
}

// Run compiles and runs src. If the script assigns a number to result, it is
// returned in Result.
func Run(ctx context.Context, src []byte) (Result, error) {
	script := tengo.NewScript(src)
	script.SetImports(Modules())

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("run tengo: %w", err)
	}

	v := compiled.Get(ResultVar)
	if v.IsUndefined() {
		return Result{}, nil
	}
	switch o := v.Object().(type) {
	case *tengo.Float:
		return Result{Value: o.Value, Set: true}, nil
	case *tengo.Int:
		return Result{Value: float64(o.Value), Set: true}, nil
	default:
		return Result{}, fmt.Errorf("script set %s to %s, want number", ResultVar, v.ValueType())
	}
}

func wrap(e binding.Entry) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != binding.Arity {
			return nil, binding.NewArityError(e.Name, len(args))
		}
		var ops [binding.Arity]float64
		for i, arg := range args {
			f, ok := toFloat(arg)
			if !ok {
				return nil, binding.NewTypeError(e.Name, i+1, arg.TypeName())
			}
			ops[i] = f
		}
		return &tengo.Float{Value: e.Fn(ops[0], ops[1])}, nil
	}
}

func toFloat(o tengo.Object) (float64, bool) {
	switch v := o.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
