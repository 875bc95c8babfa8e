// Package mcp exposes iterable subprocesses as Model Context Protocol tools.
//
// A transform tool streams its text input through a fixed command and returns
// the command's output. A non-zero exit becomes an error result carrying the
// tail of stderr, so a model calling the tool sees why the command failed.
package mcp
