// Package tailbuf provides a fixed-capacity byte ring that keeps only the most
// recent bytes written to it.
//
// It is used to bound the memory spent on a child process's standard error
// while still reporting its final diagnostic output.
package tailbuf
