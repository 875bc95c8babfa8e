// Package itersubprocess runs an external command as a streaming transform
// over byte chunks.
//
// Input is supplied as a lazy sequence of chunks and output is received as a
// lazy sequence of chunks, so neither is ever held in memory as a whole. This
// makes it possible to put a compressor, decompressor or format converter in
// the middle of a pipeline whose data does not fit in memory.
//
// # Basic Usage
//
// Run starts the command, hands the output sequence to a callback and tears
// everything down when the callback returns:
//
//	input := itersubprocess.ChunksFromSlice([][]byte{
//	    []byte("first\n"), []byte("second\n"), []byte("third\n"),
//	})
//
//	err := itersubprocess.Run(ctx, itersubprocess.Cmd("cat"), input,
//	    func(output iter.Seq2[[]byte, error]) error {
//	        for chunk, err := range output {
//	            if err != nil {
//	                return err
//	            }
//	            os.Stdout.Write(chunk)
//	        }
//	        return nil
//	    },
//	)
//
// For plain readers and writers, Pipe does the same in one call:
//
//	err := itersubprocess.Pipe(ctx, itersubprocess.Cmd("gzip", "-c"), src, dst)
//
// Start returns a Subprocess for callers that need to manage the scope
// themselves. Close (or CloseWithError) must then be deferred.
//
// # Concurrency
//
// Input is written to the process's stdin by a background goroutine and
// stderr is drained by another, while stdout is read on the caller's
// goroutine as the output sequence is ranged over. This avoids the deadlock
// of writing all input before reading any output once the data exceeds the
// operating system's pipe buffers. Writes to stdin block while the process is
// not reading, which gives natural backpressure.
//
// # Error Handling
//
// Exactly one error is reported per run, chosen in this order:
//
//  1. the error returned by the caller's callback (or passed to CloseWithError)
//  2. the first error yielded by the input sequence
//  3. cancellation of the context
//  4. *IterableSubprocessError when the process exits with a non-zero code
//
// Errors from the caller and the input are returned unchanged:
//
//	if exitErr, ok := errors.AsType[*itersubprocess.IterableSubprocessError](err); ok {
//	    log.Printf("exit %d: %s", exitErr.ReturnCode, exitErr.Stderr)
//	}
//
// IterableSubprocessError.Stderr holds only the last 65536 bytes of stderr by
// default; see WithStderrTailSize. A process that stops reading its input
// early is not an error: the remaining input is simply not sent.
//
// Abandoning the output (breaking out of the range loop and returning nil)
// kills the process and is not an error either.
//
// # Logging
//
// For detailed lifecycle tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	err := itersubprocess.Pipe(ctx, cmd, src, dst, itersubprocess.WithLogger(logger))
package itersubprocess
