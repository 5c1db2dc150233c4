// Package lexicon maps decoder token ids to symbols and scores word sequences.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ieee0824/transcript-text/textutil"
)

// DefaultWordBoundary is the SentencePiece word boundary marker.
const DefaultWordBoundary = "▁"

// ErrUnknownID is returned when decoding an id missing from the table.
var ErrUnknownID = errors.New("unknown token id")

// SymbolTable maps decoder token ids to token strings.
type SymbolTable struct {
	// WordBoundary marks the start of a word in the vocabulary. Empty
	// disables the handling in Decode.
	WordBoundary string

	symbols map[int32]string
	ids     map[string]int32
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		WordBoundary: DefaultWordBoundary,
		symbols:      make(map[int32]string),
		ids:          make(map[string]int32),
	}
}

// Add registers sym under id.
func (t *SymbolTable) Add(sym string, id int32) error {
	if prev, ok := t.symbols[id]; ok {
		return fmt.Errorf("duplicate id %d for %q and %q", id, prev, sym)
	}
	t.symbols[id] = sym
	t.ids[sym] = id
	return nil
}

// LoadSymbolTable reads a token table, one "symbol id" pair per line.
// A line holding only an id defines the space symbol.
func LoadSymbolTable(r io.Reader) (*SymbolTable, error) {
	t := NewSymbolTable()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		// Only ASCII whitespace separates fields; U+3000 and friends are symbols.
		fields := strings.FieldsFunc(scanner.Text(), textutil.IsSpace)
		var sym, idStr string
		switch len(fields) {
		case 0:
			continue
		case 1:
			sym, idStr = " ", fields[0]
		case 2:
			sym, idStr = fields[0], fields[1]
		default:
			return nil, fmt.Errorf("line %d: expected \"symbol id\", got %d fields", lineNum, len(fields))
		}

		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse id: %w", lineNum, err)
		}
		if err := t.Add(sym, int32(id)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadSymbolTableFile is a convenience wrapper that opens a file path.
func LoadSymbolTableFile(path string) (*SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSymbolTable(f)
}

// Symbol returns the raw symbol stored for id.
func (t *SymbolTable) Symbol(id int32) (string, bool) {
	s, ok := t.symbols[id]
	return s, ok
}

// ID returns the id of sym.
func (t *SymbolTable) ID(sym string) (int32, bool) {
	id, ok := t.ids[sym]
	return id, ok
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// Decode converts ids to token strings, one per id.
// Byte tokens such as "<0xC3>" become the raw byte so that a letter split
// across several byte tokens can be merged back together later. A bare word
// boundary marker becomes a space token; a leading marker on a longer piece
// is dropped, since the merger discards units that start with a space.
func (t *SymbolTable) Decode(ids []int32) ([]string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		sym, ok := t.symbols[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d at position %d", ErrUnknownID, id, i)
		}
		if b, ok := byteToken(sym); ok {
			out[i] = string([]byte{b})
			continue
		}
		if wb := t.WordBoundary; wb != "" {
			if sym == wb {
				sym = " "
			} else {
				sym = strings.ReplaceAll(strings.TrimPrefix(sym, wb), wb, " ")
			}
		}
		out[i] = sym
	}
	return out, nil
}

func byteToken(sym string) (byte, bool) {
	if len(sym) != 6 || !strings.HasPrefix(sym, "<0x") || !strings.HasSuffix(sym, ">") {
		return 0, false
	}
	v, err := strconv.ParseUint(sym[1:5], 0, 8)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}
