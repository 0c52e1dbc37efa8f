package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wasmati/buffer-layout-go/bufferlayout"
	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "layout [offset...]",
		Short: "Compute the buffer location map of a list of offsets",
		Long: `Aggregate offsets with wasmati.getBufferLocationMap and print the result.
Offsets are taken from the arguments, or one per line from stdin when no
arguments are given. "null" and blank lines are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			values, err := readValues(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			res, err := reg.AggregateColumn(cmd.Context(), udaf.BufferLocationMapQualifiedName, values)
			if err != nil {
				return err
			}
			return writeLayout(cmd.OutOrStdout(), format, res.(bufferlayout.Layout))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json,yaml)")
	return cmd
}

// readValues parses offsets from args, or from r when args is empty.
func readValues(args []string, r io.Reader) ([]any, error) {
	if len(args) > 0 {
		values := make([]any, 0, len(args))
		for _, a := range args {
			v, err := parseValue(a)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	var values []any
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := parseValue(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func parseValue(s string) (any, error) {
	if s == "null" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return v, nil
}

func writeLayout(w io.Writer, format string, layout bufferlayout.Layout) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]int64(layout))
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(map[string]int64(layout)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
