package jsonbind

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kaptinlin/jsonrepair"

	"github.com/pengelbrecht/calc/internal/binding"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

// Server answers requests read from a stream. It holds no per-call state.
type Server struct {
	logger *slog.Logger
}

// NewServer returns a Server that logs to logger. A nil logger discards logs.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{logger: logger}
}

// Serve reads requests from r and writes responses to w, one per line, until
// r is exhausted or ctx is done. Blank lines are skipped.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := enc.Encode(s.Handle(line)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// Handle answers a single encoded request.
func (s *Server) Handle(line []byte) Response {
	req, err := s.decode(line)
	if err != nil {
		s.logger.Debug("rejected request", "error", err)
		return failure(nil, KindParse, err.Error())
	}

	e, ok := binding.Lookup(req.Op)
	if !ok {
		err := fmt.Errorf("%w: %q", binding.ErrUnknownFunction, req.Op)
		return failure(req.ID, KindUnknownFunction, err.Error())
	}

	a, b, err := operands(e.Name, req.Args)
	if err != nil {
		return failure(req.ID, KindArgument, err.Error())
	}

	result := e.Fn(a, b)
	s.logger.Debug("handled request", "op", e.Name, "a", a, "b", b, "result", result)
	return success(req.ID, result)
}

func (s *Server) decode(line []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(line, &req)
	if err == nil {
		return req, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(line))
	if repairErr != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	if retryErr := json.Unmarshal([]byte(repaired), &req); retryErr != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	s.logger.Warn("repaired malformed request", "input", string(line), "repaired", repaired)
	return req, nil
}

func operands(name string, raw []json.RawMessage) (float64, float64, error) {
	if len(raw) != binding.Arity {
		return 0, 0, binding.NewArityError(name, len(raw))
	}
	var out [binding.Arity]float64
	for i, arg := range raw {
		f, err := decodeNumber(arg)
		if err != nil {
			var typeErr *typeMismatch
			if errors.As(err, &typeErr) {
				return 0, 0, binding.NewTypeError(name, i+1, typeErr.got)
			}
			return 0, 0, binding.NewTypeError(name, i+1, "invalid JSON")
		}
		out[i] = f
	}
	return out[0], out[1], nil
}

type typeMismatch struct {
	got string
}

func (e *typeMismatch) Error() string {
	return "unexpected " + e.got
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, &typeMismatch{got: jsonType(v)}
	}
	f, err := n.Float64()
	if err != nil {
		return 0, &typeMismatch{got: "out-of-range number"}
	}
	return f, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
