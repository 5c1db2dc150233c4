package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	transcript "github.com/ieee0824/transcript-text"
	"github.com/ieee0824/transcript-text/internal/metrics"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		input  string
		asJSON bool
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "merge [tokens...]",
		Short: "Merge decoder tokens into words",
		Long: `With arguments, each argument is one token and the merged words are
printed one per line.

Without arguments, records are read from --input or stdin. Each record is
a line of token ids, optionally followed by a tab and one timestamp per
token. The ids are decoded with the symbol table and one transcript line
is printed per record.`,
		Example: `  transcript merge ö f f n e n
  transcript merge --symbols tokens.txt --input decoded.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				rec, err := a.reconstructor(cmd, false)
				if err != nil {
					return err
				}
				res := rec.Reconstruct(args, nil)
				if asJSON {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
				}
				for _, w := range res.Words {
					fmt.Fprintln(cmd.OutOrStdout(), w.Text)
				}
				return nil
			}

			rec, err := a.reconstructor(cmd, true)
			if err != nil {
				return err
			}
			r := cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			results, err := mergeRecords(r, rec, jobs)
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), results, asJSON)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Record file to read (default stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Records reconstructed in parallel")
	return cmd
}

// mergeRecords reconstructs every record in r. Records are independent, so
// they run concurrently; results keep input order.
func mergeRecords(r io.Reader, rec *transcript.Reconstructor, jobs int) ([]*transcript.Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	results := make([]*transcript.Result, len(lines))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			results[i] = &transcript.Result{}
			continue
		}
		g.Go(func() error {
			ids, ts, err := transcript.ParseRecord(line)
			if err != nil {
				metrics.ObserveParseFailure(metrics.KindRecord)
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			res, err := rec.ReconstructIDs(ids, ts)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeResults(w io.Writer, results []*transcript.Result, asJSON bool) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, res := range results {
		if asJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(bw, res.Text)
	}
	return bw.Flush()
}
