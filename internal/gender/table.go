package gender

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var defaultNameData []byte

// Raw answers produced by Table
const (
	RawMale         = "male"
	RawFemale       = "female"
	RawMostlyMale   = "mostly_male"
	RawMostlyFemale = "mostly_female"
	RawAndy         = "andy"
	RawUnknown      = "unknown"
)

// codes maps the table's one or two character gender codes to raw answers
var codes = map[string]string{
	"M":  RawMale,
	"1M": RawMale,
	"?M": RawMostlyMale,
	"F":  RawFemale,
	"1F": RawFemale,
	"?F": RawMostlyFemale,
	"?":  RawAndy,
}

// nameData is the YAML document behind Table and HumanNameParser
type nameData struct {
	Titles   []string            `yaml:"titles"`
	Suffixes []string            `yaml:"suffixes"`
	Names    map[string][]string `yaml:"names"` // code → given names
}

// Table is a NameClassifier backed by an in-memory given-name table
type Table struct {
	names map[string]string // folded lowercase name → raw answer
}

// DefaultTable loads the name table embedded in the binary
func DefaultTable() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultNameData))
}

// LoadTable reads a name table in the embedded YAML format
func LoadTable(r io.Reader) (*Table, error) {
	data, err := decodeNameData(r)
	if err != nil {
		return nil, err
	}

	t := &Table{names: make(map[string]string)}
	for code, names := range data.Names {
		raw, ok := codes[strings.ToUpper(strings.TrimSpace(code))]
		if !ok {
			return nil, fmt.Errorf("unknown gender code %q", code)
		}
		for _, name := range names {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			t.names[key] = raw
			if folded := fold(key); folded != key {
				if _, exists := t.names[folded]; !exists {
					t.names[folded] = raw
				}
			}
		}
	}

	return t, nil
}

// Classify returns the raw answer for a given name, or "unknown" when the
// name is not in the table. Hyphenated names fall back to their first part.
func (t *Table) Classify(givenName string) string {
	key := strings.ToLower(strings.TrimSpace(givenName))
	if key == "" {
		return RawUnknown
	}

	if raw, ok := t.lookup(key); ok {
		return raw
	}

	if first, _, found := strings.Cut(key, "-"); found && first != "" {
		if raw, ok := t.lookup(first); ok {
			return raw
		}
	}

	return RawUnknown
}

func (t *Table) lookup(key string) (string, bool) {
	if raw, ok := t.names[key]; ok {
		return raw, true
	}
	raw, ok := t.names[fold(key)]
	return raw, ok
}

// Len returns the number of names in the table
func (t *Table) Len() int {
	return len(t.names)
}

func decodeNameData(r io.Reader) (*nameData, error) {
	var data nameData
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding name data: %w", err)
	}
	return &data, nil
}

// fold strips diacritics so "josé" and "jose" share an entry
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
