// Package calculator provides basic arithmetic operations over float64.
package calculator

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Sub returns a minus b.
func Sub(a, b float64) float64 {
	return a - b
}

// Mul returns a times b.
func Mul(a, b float64) float64 {
	return a * b
}

// Divide returns a divided by b.
//
// A zero divisor (positive or negative) yields 0.0 instead of an infinity or
// NaN, whatever a is. Callers rely on this sentinel; do not replace it with an
// error or with IEEE 754 division.
func Divide(a, b float64) float64 {
	if b == 0 {
		return 0.0
	}
	return a / b
}
