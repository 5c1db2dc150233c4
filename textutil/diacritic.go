package textutil

import "strings"

// Diacritic is the set of languages an accented fragment belongs to.
type Diacritic uint8

const (
	German Diacritic = 1 << iota
	Spanish
	French
	// Elision is the right single quotation mark used in French elision,
	// as in d’impossible.
	Elision
)

var diacriticNames = []struct {
	d    Diacritic
	name string
}{
	{German, "german"},
	{Spanish, "spanish"},
	{French, "french"},
	{Elision, "elision"},
}

func (d Diacritic) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	for _, n := range diacriticNames {
		if d&n.d != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// diacriticLetters lists the accented letters recognised per language.
// All two-byte entries share the UTF-8 lead byte 0xC3.
var diacriticLetters = []struct {
	letter rune
	langs  Diacritic
}{
	// lower case
	{'à', French},
	{'á', Spanish},
	{'â', French},
	{'ä', German},
	{'ç', French},
	{'è', French},
	{'é', Spanish | French},
	{'ê', French},
	{'ë', French},
	{'í', Spanish},
	{'î', French},
	{'ï', French},
	{'ñ', Spanish},
	{'ó', Spanish},
	{'ô', French},
	{'ö', German},
	{'ù', French},
	{'ú', Spanish},
	{'û', French},
	{'ü', German | Spanish | French},
	{'ß', German},
	// upper case
	{'À', French},
	{'Á', Spanish},
	{'Â', French},
	{'Ä', German},
	{'Ç', French},
	{'È', French},
	{'É', Spanish | French},
	{'Ê', French},
	{'Ë', French},
	{'Í', Spanish},
	{'Î', French},
	{'Ï', French},
	{'Ñ', Spanish},
	{'Ó', Spanish},
	{'Ô', French},
	{'Ö', German},
	{'Ù', French},
	{'Ú', Spanish},
	{'Û', French},
	{'Ü', German | Spanish | French},
	// ’ E2 80 99
	{'’', Elision},
}

// diacritics is keyed by the UTF-8 bytes of each letter. Built at init time
// from diacriticLetters and never modified afterwards.
var diacritics map[string]Diacritic

func init() {
	diacritics = make(map[string]Diacritic, len(diacriticLetters))
	for _, e := range diacriticLetters {
		diacritics[string(e.letter)] |= e.langs
	}
}

// Classify returns the languages fragment is an accented letter of, or 0.
// Only exact two-byte letters and the three-byte elision apostrophe match.
func Classify(fragment string) Diacritic {
	if len(fragment) != 2 && len(fragment) != 3 {
		return 0
	}
	return diacritics[fragment]
}

// IsSpecial reports whether fragment is a recognised diacritic or the elision
// apostrophe.
func IsSpecial(fragment string) bool {
	return Classify(fragment) != 0
}
