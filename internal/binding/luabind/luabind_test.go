package luabind

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEvalScenarios(t *testing.T) {
	cases := []struct {
		chunk    string
		expected float64
	}{
		{"return calc.add(2, 3)", 5},
		{"return calc.sub(5, 3)", 2},
		{"return calc.mul(2, 3)", 6},
		{"return calc.divide(6, 3)", 2},
		{"return calc.divide(5, 0)", 0},
		{"return calc.divide(-5, 0)", 0},
		{"return calc.add(0.5, calc.mul(2, 0.25))", 1},
		{`local c = require "calc"; return c.sub(1, 4)`, -3},
	}

	var out bytes.Buffer
	l := NewState(&out)
	for _, tc := range cases {
		t.Run(tc.chunk, func(t *testing.T) {
			got, err := Eval(l, tc.chunk)
			if err != nil {
				t.Fatalf("Eval error = %v", err)
			}
			if len(got) != 1 || got[0] != tc.expected {
				t.Errorf("Eval(%q) = %v, want [%v]", tc.chunk, got, tc.expected)
			}
		})
	}
}

func TestModuleHasExactlyFourFunctions(t *testing.T) {
	var out bytes.Buffer
	l := NewState(&out)
	got, err := Eval(l, `
		local n = 0
		for name, fn in pairs(calc) do
			assert(type(fn) == "function", name)
			n = n + 1
		end
		return n`)
	if err != nil {
		t.Fatalf("Eval error = %v", err)
	}
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("calc has %v functions, want 4", got)
	}
}

func TestArgumentErrors(t *testing.T) {
	cases := []struct {
		name    string
		call    string
		wantMsg string
	}{
		{"string operand", `calc.add("2", 3)`, "add: argument 1 must be a number, not string"},
		{"nil operand", `calc.sub(1, nil)`, "sub: argument 2 must be a number, not nil"},
		{"table operand", `calc.mul({}, 1)`, "mul: argument 1 must be a number, not table"},
		{"boolean operand", `calc.divide(1, true)`, "divide: argument 2 must be a number, not boolean"},
		{"too few", `calc.add(1)`, "add: expected 2 arguments, got 1"},
		{"too many", `calc.add(1, 2, 3)`, "add: expected 2 arguments, got 3"},
	}

	var out bytes.Buffer
	l := NewState(&out)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Eval(l, tc.call)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestArgumentErrorIsCatchableWithPcall(t *testing.T) {
	var out bytes.Buffer
	l := NewState(&out)
	_, err := Eval(l, `
		local ok, msg = pcall(calc.add, "a", 1)
		print(ok)
		print(msg)`)
	if err != nil {
		t.Fatalf("Eval error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %q", out.String())
	}
	if lines[0] != "false" {
		t.Errorf("pcall ok = %q, want false", lines[0])
	}
	if !strings.Contains(lines[1], "argument 1 must be a number, not string") {
		t.Errorf("pcall message = %q", lines[1])
	}
}

func TestPrintWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	l := NewState(&out)
	if _, err := Eval(l, `print("sum", calc.add(2, 3))`); err != nil {
		t.Fatalf("Eval error = %v", err)
	}
	if got := out.String(); got != "sum\t5\n" {
		t.Errorf("output = %q, want %q", got, "sum\t5\n")
	}
}

func TestEvalRejectsNonNumericResults(t *testing.T) {
	var out bytes.Buffer
	l := NewState(&out)
	if _, err := Eval(l, `return "five"`); err == nil {
		t.Fatal("expected error for string result")
	}
}

func TestEvalSyntaxError(t *testing.T) {
	var out bytes.Buffer
	l := NewState(&out)
	_, err := Eval(l, `return calc.add(`)
	if err == nil || !strings.Contains(err.Error(), "load lua") {
		t.Fatalf("error = %v, want load lua error", err)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	src := "print(calc.mul(3, 6))\nreturn calc.sub(7, 4), calc.divide(10, 2)\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	l := NewState(&out)
	got, err := RunFile(l, path)
	if err != nil {
		t.Fatalf("RunFile error = %v", err)
	}
	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("RunFile results = %v, want [3 5]", got)
	}
	if out.String() != "18\n" {
		t.Errorf("output = %q, want %q", out.String(), "18\n")
	}
}
