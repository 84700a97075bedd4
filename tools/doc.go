// Package tools declares the builtin tool specs registered at startup.
//
// Includes:
//   - Specs for the file tools: read_file, list_files (non-recursive),
//     edit_file, all tagged "filesystem".
//   - Manifest(): the ordered spec list handed to toolbox.RegisterAll from a
//     startup routine, with best-effort handler source capture.
//   - Invariants: handlers access the filesystem only through fsops, so
//     sandbox policy applies uniformly.
package tools
