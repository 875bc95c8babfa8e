// Package lifecycle coordinates a child process used as a streaming byte
// transform.
//
// A Controller launches the process and runs three flows concurrently for its
// whole lifetime: a feeder goroutine writing the caller's input chunks to
// stdin, a drain goroutine keeping the most recent stderr bytes, and the
// output sequence, which reads stdout on the caller's goroutine. Running the
// feeder and drain off the calling goroutine is what prevents the classic
// bidirectional pipe deadlock once data exceeds the OS pipe buffers.
//
// Close is the scope exit. It tears the flows down in a fixed order and
// resolves the single error the caller observes:
//
//  1. an error from the caller's own code
//  2. the first fault recorded by the input producer or feeder
//  3. cancellation of the context passed to Start
//  4. a non-zero exit code, reported as IterableSubprocessError
//
// Early abandonment of the output (stopping iteration before EOF without an
// error) kills the process and resolves to nil.
package lifecycle
