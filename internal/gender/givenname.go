package gender

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	nicknamePattern = regexp.MustCompile(`\([^)]*\)|"[^"]*"|“[^”]*”`)
	edgePunctuation = ".,;:!?'`"
)

// HumanNameParser extracts given names from personal names written in the
// usual "Title First Middle Last Suffix" or "Last, First" forms.
type HumanNameParser struct {
	titles   map[string]bool
	suffixes map[string]bool
}

// NewHumanNameParser creates a parser recognising the given honorifics and
// suffixes. Comparison ignores case and trailing dots.
func NewHumanNameParser(titles, suffixes []string) *HumanNameParser {
	p := &HumanNameParser{
		titles:   make(map[string]bool, len(titles)),
		suffixes: make(map[string]bool, len(suffixes)),
	}
	for _, t := range titles {
		p.titles[normalizeToken(t)] = true
	}
	for _, s := range suffixes {
		p.suffixes[normalizeToken(s)] = true
	}
	return p
}

// DefaultHumanNameParser uses the titles and suffixes from the embedded name data
func DefaultHumanNameParser() (*HumanNameParser, error) {
	data, err := decodeNameData(bytes.NewReader(defaultNameData))
	if err != nil {
		return nil, err
	}
	return NewHumanNameParser(data.Titles, data.Suffixes), nil
}

// GivenName returns the first name, or "" when nothing but titles,
// suffixes and punctuation remain.
func (p *HumanNameParser) GivenName(fullName string) string {
	name := nicknamePattern.ReplaceAllString(fullName, " ")

	tokens := p.nameTokens(name)
	for len(tokens) > 0 && p.titles[normalizeToken(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && p.suffixes[normalizeToken(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}

	for _, tok := range tokens {
		if given := strings.Trim(tok, edgePunctuation); given != "" {
			return given
		}
	}
	return ""
}

// nameTokens splits the name into words, swapping "Last, First" around.
// A comma followed only by suffixes ("Jane Doe, PhD") is not a swap.
func (p *HumanNameParser) nameTokens(name string) []string {
	parts := strings.Split(name, ",")
	head := strings.Fields(parts[0])
	if len(parts) < 2 {
		return head
	}

	tail := strings.Fields(strings.Join(parts[1:], " "))
	for _, tok := range tail {
		if !p.suffixes[normalizeToken(tok)] && !p.titles[normalizeToken(tok)] {
			if len(head) == 0 {
				return tail
			}
			return append(tail, head...)
		}
	}
	return head
}

func normalizeToken(tok string) string {
	return strings.ToLower(strings.Trim(tok, edgePunctuation))
}
