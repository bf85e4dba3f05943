// Package script runs calc scripts in an embedded host language.
//
// The language is chosen from the file extension: .lua runs on the Lua
// binding, .tengo on the Tengo binding. Both see the calc module.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pengelbrecht/calc/internal/binding/luabind"
	"github.com/pengelbrecht/calc/internal/binding/tengobind"
	"github.com/pengelbrecht/calc/internal/format"
)

// ErrUnsupportedScript is returned for files with an unknown extension.
var ErrUnsupportedScript = errors.New("unsupported script type")

// Language identifies a host language.
type Language int

const (
	Lua Language = iota
	Tengo
)

func (l Language) String() string {
	switch l {
	case Lua:
		return "lua"
	case Tengo:
		return "tengo"
	default:
		return "unknown"
	}
}

// Detect returns the language for path.
func Detect(path string) (Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return Lua, nil
	case ".tengo":
		return Tengo, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedScript, filepath.Base(path))
	}
}

// Runner executes scripts and writes their output to Out.
type Runner struct {
	Out       io.Writer
	Precision int
}

// Run executes the script at path. Values a Lua script returns, or that a
// Tengo script assigns to result, are written to Out one per line.
func (r *Runner) Run(ctx context.Context, path string) error {
	lang, err := Detect(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch lang {
	case Lua:
		l := luabind.NewState(r.Out)
		values, err := luabind.RunFile(l, path)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintln(r.Out, format.Number(v, r.Precision))
		}
		return nil

	default:
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		res, err := tengobind.Run(ctx, src)
		if err != nil {
			return err
		}
		if res.Set {
			fmt.Fprintln(r.Out, format.Number(res.Value, r.Precision))
		}
		return nil
	}
}
