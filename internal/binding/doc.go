// Package binding adapts dynamically-typed calls to the arithmetic functions
// in package calculator.
//
// The module surface is a fixed table of exactly four entry points: add, sub,
// mul and divide. Each takes two numeric arguments and returns one float64.
// Callers that get the arity wrong or pass something that is not a number
// receive an *ArgumentError and the arithmetic function is never called.
//
// This package owns the registry, the error taxonomy and the conversion of
// plain Go values. Each host protocol lives in its own subpackage (luabind,
// tengobind, jsonbind) and converts its own value representation before
// calling Entry.Fn.
package binding
