// Package dataset reads tweet records and writes labeled results.
//
// Inputs are JSON lines of the form
//
//	{"tweet": {...}, "textRepresentation": "Author: ..."}
//
// and outputs are JSON lines of the form
//
//	["Author: ...", true, [0.012, -0.034, ...]]
//
// A location is a local path, "-" for stdin/stdout, or s3://bucket/key when an
// object store is configured. Locations ending in .gz or .zst are compressed
// transparently.
package dataset
