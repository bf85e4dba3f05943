// Package format renders operands and results for people.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Number formats v. With precision < 0 it uses the shortest representation
// that round-trips and always shows a decimal point ("5.0", "0.1"); values
// below 1e-4 or from 1e16 up switch to exponent form ("1e+16").
// Otherwise it prints exactly precision decimals. Non-finite values render as
// "inf", "-inf" and "nan".
func Number(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	var s string
	if abs := math.Abs(v); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(v, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(v, 'e', -1, 64)
	}
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// Expression renders a call the way it reads on paper: "5.0 + 3.0 = 8.0".
func Expression(a float64, symbol string, b float64, result float64, precision int) string {
	var sb strings.Builder
	sb.WriteString(Number(a, precision))
	sb.WriteByte(' ')
	sb.WriteString(symbol)
	sb.WriteByte(' ')
	sb.WriteString(Number(b, precision))
	sb.WriteString(" = ")
	sb.WriteString(Number(result, precision))
	return sb.String()
}
