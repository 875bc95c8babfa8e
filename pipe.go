package itersubprocess

import (
	"context"
	"io"
	"iter"
)

// Pipe streams r through cmd into w.
//
// It is Run with input read from r and output copied to w, for the common
// case where both ends are plain readers and writers:
//
//	err := itersubprocess.Pipe(ctx, itersubprocess.Cmd("gzip", "-c"), src, dst)
func Pipe(ctx context.Context, cmd Command, r io.Reader, w io.Writer, opts ...Option) error {
	options := applyOptions(opts)

	return Run(ctx, cmd, ChunksFromReader(r, options.ResolvedChunkSize()),
		func(output iter.Seq2[[]byte, error]) error {
			_, err := WriteTo(w, output)

			return err
		},
		opts...,
	)
}
