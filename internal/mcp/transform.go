package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/iterable-subprocess-go/internal/config"
	sperrors "github.com/wagiedev/iterable-subprocess-go/internal/errors"
	"github.com/wagiedev/iterable-subprocess-go/internal/lifecycle"
)

// DefaultMaxOutput caps the text returned by a transform tool.
const DefaultMaxOutput = 1 << 20

// TransformSchema is the input schema shared by all transform tools.
func TransformSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"input": {
				Type:        "string",
				Description: "Text written to the command's standard input.",
			},
			"args": {
				Type:        "array",
				Description: "Extra arguments appended to the command line.",
				Items:       &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"input"},
	}
}

// NewTransformTool creates a tool that streams its input through cmd and
// returns the output as text.
//
// opts may be nil. Its Env and Dir apply when cmd leaves them empty. Output
// beyond DefaultMaxOutput bytes abandons the process and is reported as an
// error result.
func NewTransformTool(
	name, description string,
	cmd config.Command,
	opts *config.Options,
) (*mcp.Tool, mcp.ToolHandler) {
	if opts == nil {
		opts = &config.Options{}
	}

	if len(cmd.Env) == 0 {
		cmd.Env = opts.Env
	}

	if cmd.Dir == "" {
		cmd.Dir = opts.Dir
	}

	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: TransformSchema(),
	}

	t := &transform{cmd: cmd, opts: opts, maxOutput: DefaultMaxOutput}

	return tool, t.handle
}

// Register adds a transform tool for cmd to server.
func Register(server *mcp.Server, name, description string, cmd config.Command, opts *config.Options) {
	server.AddTool(NewTransformTool(name, description, cmd, opts))
}

type transform struct {
	cmd       config.Command
	opts      *config.Options
	maxOutput int
}

var errOutputTooLarge = errors.New("output too large")

func (t *transform) handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	cmd := t.cmd
	cmd.Args = append(slices.Clone(cmd.Args), args.Args...)

	input := split([]byte(args.Input), t.opts.ResolvedChunkSize())

	ctrl := lifecycle.New(t.opts.Logger, cmd, input, t.opts)
	if err := ctrl.Start(ctx); err != nil {
		return ErrorResult(fmt.Sprintf("failed to start %s: %v", cmd.Name, err)), nil
	}

	var (
		out     bytes.Buffer
		readErr error
	)

	for chunk, err := range ctrl.Output() {
		if err != nil {
			readErr = err

			break
		}

		if out.Len()+len(chunk) > t.maxOutput {
			readErr = errOutputTooLarge

			break
		}

		out.Write(chunk)
	}

	if err := ctrl.Close(readErr); err != nil {
		if exitErr, ok := errors.AsType[*sperrors.IterableSubprocessError](err); ok {
			return ErrorResult(exitErr.Error()), nil
		}

		if errors.Is(err, errOutputTooLarge) {
			return ErrorResult(fmt.Sprintf("%s: output exceeds %d bytes", cmd.Name, t.maxOutput)), nil
		}

		return ErrorResult(fmt.Sprintf("%s failed: %v", cmd.Name, err)), nil
	}

	return TextResult(out.String()), nil
}

// split yields data in chunks of at most size bytes.
func split(data []byte, size int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for chunk := range slices.Chunk(data, size) {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
