package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee0824/transcript-text/lexicon"
)

func newWERCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "wer REF HYP",
		Short: "Compute word error rate between two transcript files",
		Long: `wer compares a reference and a hypothesis transcript file line by line.
Words are separated by whitespace. Both files must have the same number of
lines.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := readLines(args[0])
			if err != nil {
				return err
			}
			hyps, err := readLines(args[1])
			if err != nil {
				return err
			}
			if len(refs) != len(hyps) {
				return fmt.Errorf("line count mismatch: %s has %d, %s has %d", args[0], len(refs), args[1], len(hyps))
			}

			out := cmd.OutOrStdout()
			var edits, words int
			for i := range refs {
				ref := strings.Fields(refs[i])
				hyp := strings.Fields(hyps[i])
				d := lexicon.EditDistance(ref, hyp)
				edits += d
				words += len(ref)
				if verbose {
					fmt.Fprintf(out, "%d\t%.2f%%\t%s\t%s\n", i+1, 100*lexicon.WordErrorRate(ref, hyp), refs[i], hyps[i])
				}
			}
			rate := 0.0
			if words > 0 {
				rate = float64(edits) / float64(words)
			} else if edits > 0 {
				rate = 1
			}
			fmt.Fprintf(out, "WER %.2f%% [ %d / %d ]\n", 100*rate, edits, words)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the error rate of every line")
	return cmd
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
