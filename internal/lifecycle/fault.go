package lifecycle

import "sync"

// fault holds the first error observed by any flow. Later errors are dropped.
type fault struct {
	mu  sync.Mutex
	err error
}

// Set records err if no fault has been recorded yet and reports whether it did.
func (f *fault) Set(err error) bool {
	if err == nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return false
	}

	f.err = err

	return true
}

// Err returns the recorded fault, if any.
func (f *fault) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}
