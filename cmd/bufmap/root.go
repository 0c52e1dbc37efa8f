package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	logLevel       string
	rejectNegative bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "bufmap",
		Short:        "Buffer layout aggregation harness",
		Long:         `Compute buffer location maps from offsets, directly or over a JSON-lines host protocol.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug,info,warn,error)")
	cmd.PersistentFlags().BoolVar(&opts.rejectNegative, "reject-negative", false, "Reject negative offsets instead of sorting them before 0")

	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newAdapterCmd(opts))
	return cmd
}

// newLogger builds the stderr logger for the configured level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// newRegistry returns a registry holding the buffer location function with
// the configured binding options and call logging.
func newRegistry(opts *rootOptions, logger *slog.Logger) (*udaf.Registry, error) {
	reg := udaf.NewRegistry(&udaf.RegistryOptions{
		Logger:     logger,
		Middleware: []udaf.Middleware{udaf.WithLogging(logger)},
	})
	fn := udaf.BufferLocationMap(&udaf.BindingOptions{RejectNegative: opts.rejectNegative})
	if err := reg.Register(fn); err != nil {
		return nil, err
	}
	return reg, nil
}

func setup(cmd *cobra.Command, opts *rootOptions) (*udaf.Registry, *slog.Logger, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	reg, err := newRegistry(opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return reg, logger, nil
}
