package jsonbind

import (
	"encoding/json"
	"math"
	"strconv"
)

// Error kinds reported in ErrorBody.Kind.
const (
	KindParse           = "parse_error"
	KindUnknownFunction = "unknown_function"
	KindArgument        = "argument_error"
)

// Request is a single call.
type Request struct {
	ID   json.RawMessage   `json:"id,omitempty"`
	Op   string            `json:"op"`
	Args []json.RawMessage `json:"args"`
}

// Response answers a Request. Exactly one of Result and Error is set.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result *Number         `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody describes a failed call.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Number is a float64 that encodes non-finite values as strings.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"NaN"`:
		*n = Number(math.NaN())
		return nil
	case `"Infinity"`:
		*n = Number(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*n = Number(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func failure(id json.RawMessage, kind, msg string) Response {
	return Response{ID: id, Error: &ErrorBody{Kind: kind, Message: msg}}
}

func success(id json.RawMessage, v float64) Response {
	n := Number(v)
	return Response{ID: id, Result: &n}
}
