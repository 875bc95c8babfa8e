//go:build !windows

package lifecycle

func isPlatformBrokenPipe(error) bool { return false }
