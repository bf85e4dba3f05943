// Package jsonbind serves the calc module over a newline-delimited JSON
// stream, so any process that can write to a pipe can call it.
//
// Each request is one line:
//
//	{"id": 1, "op": "add", "args": [2, 3]}
//
// and gets exactly one response line:
//
//	{"id":1,"result":5}
//	{"id":2,"error":{"kind":"argument_error","message":"add: argument 1 must be a number, not string"}}
//
// Requests that are not valid JSON are passed through jsonrepair once before
// being rejected. Results that JSON cannot represent are sent as the strings
// "Infinity", "-Infinity" and "NaN".
package jsonbind
