package subprocess

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	sperrors "github.com/wagiedev/iterable-subprocess-go/internal/errors"
)

// Resolve locates the executable for name.
//
// Names containing a path separator are used as-is after checking they exist.
// Bare names are searched in PATH. Returns ExecutableNotFoundError if the
// executable cannot be located.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", sperrors.ErrEmptyCommand
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		if _, err := os.Stat(name); err != nil {
			return "", &sperrors.ExecutableNotFoundError{
				Name:          name,
				SearchedPaths: []string{name},
				Err:           err,
			}
		}

		return name, nil
	}

	path, err := exec.LookPath(name)
	if err == nil {
		return path, nil
	}

	// Found only relative to the working directory through a "." PATH entry.
	if errors.Is(err, exec.ErrDot) {
		return "", &sperrors.LaunchError{Err: err}
	}

	return "", &sperrors.ExecutableNotFoundError{
		Name:          name,
		SearchedPaths: searchedPaths(name),
		Err:           err,
	}
}

// searchedPaths lists the candidate locations LookPath tried for name.
func searchedPaths(name string) []string {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	paths := make([]string, 0, len(dirs))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		paths = append(paths, filepath.Join(dir, name))
	}

	return paths
}
