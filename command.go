package itersubprocess

import "github.com/wagiedev/iterable-subprocess-go/internal/config"

// Command describes the program to launch: executable, arguments and
// optionally environment and working directory.
type Command = config.Command

// Launcher spawns processes. Implement this to run commands somewhere other
// than the local machine, or to inject fakes in tests. The default launcher
// uses os/exec.
type Launcher = config.Launcher

// Process is the handle a Launcher returns.
type Process = config.Process

// Cmd returns a Command for name with args.
//
//	cmd := itersubprocess.Cmd("gzip", "-c")
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}
