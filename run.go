package itersubprocess

import (
	"context"
	"fmt"
	"iter"
)

// Run manages a subprocess's lifecycle around fn.
//
// It starts cmd fed from input, passes the output sequence to fn, and always
// tears the process down when fn returns or panics. The error returned is,
// in order of precedence: fn's error, an error yielded by input, cancellation
// of ctx, or *IterableSubprocessError if the process exited non-zero. If fn
// returns nil without reading the output to the end, the process is killed and
// Run returns nil.
//
// Example usage:
//
//	err := itersubprocess.Run(ctx, itersubprocess.Cmd("gzip", "-c"), input,
//	    func(output iter.Seq2[[]byte, error]) error {
//	        for chunk, err := range output {
//	            if err != nil {
//	                return err
//	            }
//	            if _, err := w.Write(chunk); err != nil {
//	                return err
//	            }
//	        }
//	        return nil
//	    },
//	    itersubprocess.WithLogger(log),
//	)
func Run(
	ctx context.Context,
	cmd Command,
	input iter.Seq2[[]byte, error],
	fn func(output iter.Seq2[[]byte, error]) error,
	opts ...Option,
) error {
	s, err := Start(ctx, cmd, input, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = s.CloseWithError(fmt.Errorf("panic: %v", r))

			panic(r)
		}
	}()

	return s.CloseWithError(fn(s.Output()))
}
