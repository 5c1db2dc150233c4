package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee0824/transcript-text/internal/logger"
	"github.com/ieee0824/transcript-text/internal/metrics"
	"github.com/ieee0824/transcript-text/textutil"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		bits      int
		delims    string
		omitEmpty bool
	)
	cmd := &cobra.Command{
		Use:   "parse [values...]",
		Short: "Parse real numbers, including inf and nan spellings",
		Example: `  transcript parse 1.5 -- -1.#INF
  transcript parse --delims , "1,2.5,nan"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bits != 32 && bits != 64 {
				return fmt.Errorf("--bits must be 32 or 64, got %d", bits)
			}
			log := logger.Get(cmd.Context())
			failed := 0
			for _, arg := range args {
				out, err := parseArg(arg, bits, delims, omitEmpty)
				if err != nil {
					failed++
					metrics.ObserveParseFailure(metrics.KindReal)
					log.Debugw("parse failed", "input", arg, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed to parse", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 64, "Float width: 32 or 64")
	cmd.Flags().StringVar(&delims, "delims", "", "Parse each value as a vector split on these characters")
	cmd.Flags().BoolVar(&omitEmpty, "omit-empty", false, "Skip empty fragments when splitting vectors")
	return cmd
}

func parseArg(arg string, bits int, delims string, omitEmpty bool) (string, error) {
	if delims == "" {
		if bits == 32 {
			v, err := textutil.ParseFloat32(arg)
			return formatReal(float64(v), 32), err
		}
		v, err := textutil.ParseFloat64(arg)
		return formatReal(v, 64), err
	}

	var parts []string
	if bits == 32 {
		vs, err := textutil.ParseReals[float32](arg, delims, omitEmpty)
		if err != nil {
			return "", err
		}
		for _, v := range vs {
			parts = append(parts, formatReal(float64(v), 32))
		}
	} else {
		vs, err := textutil.ParseReals[float64](arg, delims, omitEmpty)
		if err != nil {
			return "", err
		}
		for _, v := range vs {
			parts = append(parts, formatReal(v, 64))
		}
	}
	return "[" + strings.Join(parts, " ") + "]", nil
}

func formatReal(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}
