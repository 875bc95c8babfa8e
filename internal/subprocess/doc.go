// Package subprocess provides the os/exec based process launcher.
//
// This package implements the config.Launcher interface by resolving the
// executable, wiring its stdin, stdout and stderr to operating system pipes,
// and exposing the parent ends of those pipes together with kill and wait
// operations. Pipe ends are owned by the caller: Wait never closes them, so
// stdout and stderr can be read to EOF after the process has been reaped.
package subprocess
