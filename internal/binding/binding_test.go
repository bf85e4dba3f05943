package binding

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEntriesFixedTable(t *testing.T) {
	got := Entries()
	want := []string{"add", "sub", "mul", "divide"}
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Entries()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
		if got[i].Fn == nil {
			t.Errorf("Entries()[%d].Fn is nil", i)
		}
	}

	// Mutating the returned slice must not change the registry.
	got[0].Name = "changed"
	if Entries()[0].Name != "add" {
		t.Error("Entries() exposed the registry for mutation")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("divide"); !ok {
		t.Error("Lookup(divide) not found")
	}
	for _, name := range []string{"div", "/", "pow", "", "ADD"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) found an entry, want none", name)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := map[string]string{
		"add":    "add",
		"+":      "add",
		"sub":    "sub",
		"-":      "sub",
		"mul":    "mul",
		"*":      "mul",
		"divide": "divide",
		"div":    "divide",
		"/":      "divide",
	}
	for token, want := range cases {
		e, ok := Resolve(token)
		if !ok {
			t.Errorf("Resolve(%q) not found", token)
			continue
		}
		if e.Name != want {
			t.Errorf("Resolve(%q) = %q, want %q", token, e.Name, want)
		}
	}
	if _, ok := Resolve("pow"); ok {
		t.Error("Resolve(pow) found an entry, want none")
	}
}

func TestCallScenarios(t *testing.T) {
	cases := []struct {
		name     string
		fn       string
		a, b     any
		expected float64
	}{
		{"add ints", "add", 2, 3, 5},
		{"sub ints", "sub", 5, 3, 2},
		{"mul ints", "mul", 2, 3, 6},
		{"divide ints", "divide", 6, 3, 2},
		{"divide by zero", "divide", 5, 0, 0},
		{"mixed kinds", "add", int64(1), float32(0.5), 1.5},
		{"unsigned", "mul", uint8(4), uint64(5), 20},
		{"json number", "sub", json.Number("10"), json.Number("2.5"), 7.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Call(tc.fn, tc.a, tc.b)
			if err != nil {
				t.Fatalf("Call(%s) error = %v", tc.fn, err)
			}
			if got != tc.expected {
				t.Errorf("Call(%s, %v, %v) = %v, want %v", tc.fn, tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestCallUnknownFunction(t *testing.T) {
	_, err := Call("pow", 2, 3)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("Call(pow) error = %v, want ErrUnknownFunction", err)
	}
}

func TestCallRejectsBadArgumentsWithoutInvoking(t *testing.T) {
	calls := 0
	probe := Entry{Name: "probe", Fn: func(a, b float64) float64 {
		calls++
		return a + b
	}}

	cases := []struct {
		name    string
		args    []any
		wantMsg string
	}{
		{"string first", []any{"2", 3}, "probe: argument 1 must be a number, not string"},
		{"string second", []any{2, "x"}, "probe: argument 2 must be a number, not string"},
		{"bool", []any{true, 1}, "argument 1 must be a number, not bool"},
		{"nil", []any{1, nil}, "argument 2 must be a number, not nil"},
		{"slice", []any{[]float64{1}, 2}, "argument 1 must be a number, not []float64"},
		{"bad json number", []any{json.Number("abc"), 2}, "argument 1 must be a number"},
		{"no args", nil, "probe: expected 2 arguments, got 0"},
		{"one arg", []any{1}, "expected 2 arguments, got 1"},
		{"three args", []any{1, 2, 3}, "expected 2 arguments, got 3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := probe.Call(tc.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrArgument) {
				t.Errorf("errors.Is(err, ErrArgument) = false for %v", err)
			}
			if !IsArgumentError(err) {
				t.Errorf("IsArgumentError(%v) = false", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tc.wantMsg)
			}
		})
	}

	if calls != 0 {
		t.Errorf("arithmetic function invoked %d times on rejected calls", calls)
	}
}

func TestArgumentErrorFields(t *testing.T) {
	_, err := Call("add", 1, "two")
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error %v is not *ArgumentError", err)
	}
	if argErr.Func != "add" || argErr.Position != 2 || argErr.Got != "string" {
		t.Errorf("unexpected fields: %+v", argErr)
	}
}

func TestCallStrings(t *testing.T) {
	cases := []struct {
		token    string
		args     []string
		wantName string
		expected float64
	}{
		{"add", []string{"5", "3"}, "add", 8},
		{"div", []string{"10", "2"}, "divide", 5},
		{"sub", []string{"7", "4"}, "sub", 3},
		{"*", []string{"3", "6"}, "mul", 18},
		{"divide", []string{"5", "0"}, "divide", 0},
		{"add", []string{"-1.5", "1e2"}, "add", 98.5},
	}

	for _, tc := range cases {
		e, got, err := CallStrings(tc.token, tc.args...)
		if err != nil {
			t.Errorf("CallStrings(%s, %v) error = %v", tc.token, tc.args, err)
			continue
		}
		if e.Name != tc.wantName {
			t.Errorf("CallStrings(%s) entry = %q, want %q", tc.token, e.Name, tc.wantName)
		}
		if got != tc.expected {
			t.Errorf("CallStrings(%s, %v) = %v, want %v", tc.token, tc.args, got, tc.expected)
		}
	}
}

func TestCallStringsOutOfRangeSaturates(t *testing.T) {
	_, got, err := CallStrings("add", "1e400", "1")
	if err != nil {
		t.Fatalf("CallStrings error = %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("CallStrings(add, 1e400, 1) = %v, want +Inf", got)
	}
}

func TestCallStringsErrors(t *testing.T) {
	if _, _, err := CallStrings("pow", "1", "2"); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("unknown op error = %v, want ErrUnknownFunction", err)
	}
	if _, _, err := CallStrings("add", "1"); !errors.Is(err, ErrArgument) {
		t.Errorf("arity error = %v, want ErrArgument", err)
	}
	_, _, err := CallStrings("mul", "two", "3")
	if !errors.Is(err, ErrArgument) {
		t.Fatalf("parse error = %v, want ErrArgument", err)
	}
	if want := `mul: argument 1 must be a number, not "two"`; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParseStrings(t *testing.T) {
	e, a, b, err := ParseStrings("/", "-4", "0.5")
	if err != nil {
		t.Fatalf("ParseStrings error = %v", err)
	}
	if e.Name != "divide" || a != -4 || b != 0.5 {
		t.Errorf("ParseStrings = %q, %v, %v", e.Name, a, b)
	}
}

func TestToFloat(t *testing.T) {
	accepted := []struct {
		in   any
		want float64
	}{
		{float64(1.5), 1.5},
		{float32(0.5), 0.5},
		{int(-3), -3},
		{int8(4), 4},
		{int64(1 << 40), 1 << 40},
		{uint(7), 7},
		{uint64(9), 9},
		{json.Number("2.25"), 2.25},
	}
	for _, tc := range accepted {
		got, ok := ToFloat(tc.in)
		if !ok || got != tc.want {
			t.Errorf("ToFloat(%#v) = %v, %v; want %v, true", tc.in, got, ok, tc.want)
		}
	}

	for _, in := range []any{nil, true, "3", []byte("3"), json.Number("x"), struct{}{}} {
		if _, ok := ToFloat(in); ok {
			t.Errorf("ToFloat(%#v) accepted, want rejected", in)
		}
	}
}
