package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pengelbrecht/calc/cmd/calc/cmd"
	"github.com/pengelbrecht/calc/internal/binding"
	"github.com/pengelbrecht/calc/internal/script"
)

const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	err := cmd.Execute(context.Background(), normalizeArgs(args[1:]))
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var usage *cmd.UsageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &usage),
		errors.Is(err, binding.ErrArgument),
		errors.Is(err, binding.ErrUnknownFunction),
		errors.Is(err, script.ErrUnsupportedScript):
		return exitUsage
	default:
		return exitError
	}
}

// valueFlags take their value from the following token.
var valueFlags = map[string]bool{
	"--config":    true,
	"--precision": true,
}

// normalizeArgs lets operands such as -5 through the flag parser: when a
// positional looks like a negative number, flags are moved ahead of a "--"
// separator and the positionals follow it.
func normalizeArgs(args []string) []string {
	var flags, positional []string
	negative := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return args
		case isNegativeNumber(a):
			negative = true
			positional = append(positional, a)
		case len(a) > 1 && strings.HasPrefix(a, "-"):
			flags = append(flags, a)
			if valueFlags[a] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, a)
		}
	}
	if !negative {
		return args
	}
	out := append(flags, "--")
	return append(out, positional...)
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
