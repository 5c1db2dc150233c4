package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transcript "github.com/ieee0824/transcript-text"
)

const testSymbols = "▁ 0\nh 1\ni 2\n▁there 3\n! 4\n<0xC3> 5\n<0xB6> 6\nl 7\n"

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	out, err := executeCommand(t, "parse", "--", "1.5", "-infinity", "1.#QNAN")
	require.NoError(t, err)
	assert.Equal(t, "1.5\n-Inf\nNaN\n", out)
}

func TestParseCommandVector(t *testing.T) {
	out, err := executeCommand(t, "parse", "--bits", "32", "--delims", ",", "--omit-empty", "0.5,,-1.#INF,")
	require.NoError(t, err)
	assert.Equal(t, "[0.5 -Inf]\n", out)
}

func TestParseCommandFailure(t *testing.T) {
	out, err := executeCommand(t, "parse", "2", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 inputs failed")
	assert.Contains(t, out, "2\n")
	assert.Contains(t, out, `error: parse real "abc"`)
}

func TestParseCommandBadBits(t *testing.T) {
	_, err := executeCommand(t, "parse", "--bits", "16", "1")
	require.Error(t, err)
}

func TestMergeCommandTokens(t *testing.T) {
	out, err := executeCommand(t, "merge", "ö", "f", "f", "n", "e", "n", " ", "x", ".")
	require.NoError(t, err)
	assert.Equal(t, "öffnen\nx\n.\n", out)
}

func TestMergeCommandRecords(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.txt",
		"1 2 0 3 4\t0 0.04 0.08 0.12 0.16\n\n5 6 7\n")

	out, err := executeCommand(t, "merge", "--symbols", symbols, "--input", input, "-j", "2")
	require.NoError(t, err)
	assert.Equal(t, "hi there!\n\nöl\n", out)
}

func TestMergeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.txt", "1 2 0 3\t0 0.04 0.08 0.12\n")

	out, err := executeCommand(t, "merge", "--symbols", symbols, "--input", input, "--json")
	require.NoError(t, err)

	var res transcript.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "hi there", res.Text)
	require.Len(t, res.Words, 2)
	assert.InDelta(t, 0.0, res.Words[0].Start, 1e-6)
	assert.InDelta(t, 0.08, res.Words[0].End, 1e-6)
	assert.InDelta(t, 0.16, res.Words[1].End, 1e-6)
}

func TestMergeCommandBlankTimestamps(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.txt", "1 2 0 3\t,\n1 2\t \n")

	out, err := executeCommand(t, "merge", "--symbols", symbols, "--input", input)
	require.NoError(t, err)
	assert.Equal(t, "hi there\nhi\n", out)
}

func TestMergeCommandBadRecord(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.txt", "1 2\nx y\n")

	_, err := executeCommand(t, "merge", "--symbols", symbols, "--input", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMergeCommandNeedsSymbols(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "decoded.txt", "1 2\n")

	_, err := executeCommand(t, "merge", "--input", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol table is required")
}

func TestFollowCommand(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.log", "1 2 0 3 4\n1 2\nnot a record\n5 6 7 0 3\n")

	out, err := executeCommand(t, "follow", "--symbols", symbols, "--no-follow",
		"--filter", "len(Words) >= 2", input)
	require.NoError(t, err)
	assert.Equal(t, "hi there!\nöl there\n", out)
}

func TestFollowCommandBadFilter(t *testing.T) {
	dir := t.TempDir()
	symbols := writeFile(t, dir, "tokens.txt", testSymbols)
	input := writeFile(t, dir, "decoded.log", "1 2\n")

	_, err := executeCommand(t, "follow", "--symbols", symbols, "--no-follow", "--filter", "Words +", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile filter")
}

func TestCompileFilter(t *testing.T) {
	res := &transcript.Result{
		Text:   "hi there",
		Tokens: []string{"h", "i", " ", "there"},
		Words: []transcript.Word{
			{Text: "hi", Start: 0, End: 0.08},
			{Text: "there", Start: 0.12, End: 0.5},
		},
	}

	tests := []struct {
		src  string
		want bool
	}{
		{"", true},
		{`Text contains "there"`, true},
		{`Words[0] == "hello"`, false},
		{"len(Tokens) == 4", true},
		{"Duration > 0.4", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			program, err := compileFilter(tt.src)
			require.NoError(t, err)
			got, err := matchFilter(program, res)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := compileFilter("len(Text)")
	assert.Error(t, err, "non-boolean filter must not compile")
}

func TestWERCommand(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.txt", "a b c\nd e\n")
	hyp := writeFile(t, dir, "hyp.txt", "a x c\nd e\n")

	out, err := executeCommand(t, "wer", ref, hyp)
	require.NoError(t, err)
	assert.Equal(t, "WER 20.00% [ 1 / 5 ]\n", out)

	out, err = executeCommand(t, "wer", "-v", ref, hyp)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\t33.33%"))
	assert.True(t, strings.HasPrefix(lines[1], "2\t0.00%"))
}

func TestWERCommandLineMismatch(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.txt", "a\nb\n")
	hyp := writeFile(t, dir, "hyp.txt", "a\n")

	_, err := executeCommand(t, "wer", ref, hyp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line count mismatch")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "transcript dev\n", out)
}

func TestHelp(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"merge", "parse", "follow", "wer", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "reconstruct:\n  frame_shift: -1\n")

	_, err := executeCommand(t, "--config", cfg, "version")
	require.Error(t, err)
}
