package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ToFloat converts a Go numeric value to float64. Integers, floats and
// json.Number are accepted. Strings, bools and nil are not, even when they
// look numeric.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Operands checks that args holds exactly two numbers and returns them.
func Operands(fn string, args []any) (float64, float64, error) {
	if len(args) != Arity {
		return 0, 0, NewArityError(fn, len(args))
	}
	var out [Arity]float64
	for i, arg := range args {
		f, ok := ToFloat(arg)
		if !ok {
			return 0, 0, NewTypeError(fn, i+1, typeName(arg))
		}
		out[i] = f
	}
	return out[0], out[1], nil
}

// ParseStrings resolves token and converts textual operands, as typed on a
// command line. token may be a Name, Short or Symbol.
func ParseStrings(token string, args ...string) (Entry, float64, float64, error) {
	e, ok := Resolve(token)
	if !ok {
		return Entry{}, 0, 0, fmt.Errorf("%w: %q", ErrUnknownFunction, token)
	}
	if len(args) != Arity {
		return e, 0, 0, NewArityError(e.Name, len(args))
	}
	var out [Arity]float64
	for i, arg := range args {
		// Out-of-range input saturates to ±Inf.
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return e, 0, 0, &ArgumentError{
				Func:     e.Name,
				Position: i + 1,
				Want:     "a number",
				Got:      strconv.Quote(arg),
			}
		}
		out[i] = f
	}
	return e, out[0], out[1], nil
}

// CallStrings invokes the operation named by token with textual operands.
func CallStrings(token string, args ...string) (Entry, float64, error) {
	e, a, b, err := ParseStrings(token, args...)
	if err != nil {
		return e, 0, err
	}
	return e, e.Fn(a, b), nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
