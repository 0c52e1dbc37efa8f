package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wasmati/buffer-layout-go/bufferlayout"
	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

const adapterVersion = "0.1.0"

// Command is one request line from the host.
type Command struct {
	Type     string `json:"type"`
	Function string `json:"function,omitempty"`
	ID       string `json:"id,omitempty"`
	Value    any    `json:"value,omitempty"`  // json.Number or nil
	Values   []any  `json:"values,omitempty"` // aggregate only
}

// Result is one response line sent back to the host.
type Result struct {
	Type        string         `json:"type"`
	Success     bool           `json:"success"`
	CommandType string         `json:"commandType,omitempty"`
	ID          string         `json:"id,omitempty"`
	Result      any            `json:"result,omitempty"`
	Functions   []FunctionInfo `json:"functions,omitempty"`
	ErrorCode   string         `json:"errorCode,omitempty"`
	Message     string         `json:"message,omitempty"`
	Name        string         `json:"name,omitempty"`
	Version     string         `json:"version,omitempty"`
}

// FunctionInfo describes a registered function.
type FunctionInfo struct {
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description,omitempty"`
}

func newAdapterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "adapter",
		Short: "Serve the JSON-lines host protocol on stdin/stdout",
		Long: `Read one JSON command per line from stdin and answer each with one JSON
result line on stdout. Commands: init, functions, open, update, finalize,
discard, aggregate, shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			a := &adapter{registry: reg, session: udaf.NewSession(reg), logger: logger}
			return a.serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

type adapter struct {
	registry *udaf.Registry
	session  *udaf.Session
	logger   *slog.Logger
}

// serve answers commands until shutdown or end of input.
func (a *adapter) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Aggregate commands can carry large value lists.
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var result Result
		cmd, err := parseCommand(line)
		if err != nil {
			result = errorResult("parse", "PARSE_ERROR", err.Error())
		} else {
			result = a.handle(ctx, cmd)
		}
		if err := enc.Encode(result); err != nil {
			return err
		}

		if cmd.Type == "shutdown" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if n := a.session.Len(); n > 0 {
		a.logger.Warn("adapter exiting with open aggregations", "open", n)
	}
	return nil
}

func parseCommand(line []byte) (Command, error) {
	var cmd Command
	dec := json.NewDecoder(bytes.NewReader(line))
	// Keep integers exact; float64 would round offsets above 2^53.
	dec.UseNumber()
	if err := dec.Decode(&cmd); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

func (a *adapter) handle(ctx context.Context, cmd Command) Result {
	switch cmd.Type {
	case "init":
		return Result{
			Type:    "init",
			Success: true,
			Name:    "buffer-layout-go",
			Version: adapterVersion,
		}

	case "functions":
		var infos []FunctionInfo
		for _, fn := range a.registry.Functions() {
			infos = append(infos, FunctionInfo{
				Name:        fn.QualifiedName(),
				Signature:   fn.Signature(),
				Description: fn.Description,
			})
		}
		return Result{Type: "functions", Success: true, Functions: infos}

	case "open":
		id, err := a.session.Open(cmd.Function)
		if err != nil {
			return mapError("open", err)
		}
		return Result{Type: "open", Success: true, ID: id}

	case "update":
		if err := a.session.Update(ctx, cmd.ID, cmd.Value); err != nil {
			return mapError("update", err)
		}
		return Result{Type: "update", Success: true, ID: cmd.ID}

	case "finalize":
		res, err := a.session.Finalize(ctx, cmd.ID)
		if err != nil {
			return mapError("finalize", err)
		}
		return Result{Type: "finalize", Success: true, ID: cmd.ID, Result: res}

	case "discard":
		if !a.session.Discard(cmd.ID) {
			return mapError("discard", fmt.Errorf("%s: %w", cmd.ID, udaf.ErrUnknownInstance))
		}
		return Result{Type: "discard", Success: true, ID: cmd.ID}

	case "aggregate":
		res, err := a.registry.AggregateColumn(ctx, cmd.Function, cmd.Values)
		if err != nil {
			return mapError("aggregate", err)
		}
		return Result{Type: "aggregate", Success: true, Result: res}

	case "shutdown":
		return Result{Type: "shutdown", Success: true}

	default:
		return errorResult(cmd.Type, "NOT_SUPPORTED", "unknown command type: "+cmd.Type)
	}
}

func errorResult(cmdType, code, message string) Result {
	return Result{
		Type:        "error",
		Success:     false,
		CommandType: cmdType,
		ErrorCode:   code,
		Message:     message,
	}
}

func mapError(cmdType string, err error) Result {
	code := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, udaf.ErrUnknownFunction):
		code = "UNKNOWN_FUNCTION"
	case errors.Is(err, udaf.ErrUnknownInstance):
		code = "UNKNOWN_INSTANCE"
	case errors.Is(err, udaf.ErrHostType), errors.Is(err, udaf.ErrArity):
		code = "TYPE_ERROR"
	case errors.Is(err, udaf.ErrNegativeOffset):
		code = "NEGATIVE_OFFSET"
	case errors.Is(err, bufferlayout.ErrFinalized):
		code = "INVALID_STATE"
	case errors.Is(err, bufferlayout.ErrDistanceOverflow):
		code = "OVERFLOW"
	}
	return errorResult(cmdType, code, err.Error())
}
