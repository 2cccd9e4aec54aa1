package scraper

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// bioState is the position of the biography scanner within a profile page
type bioState int

const (
	seekingHeading bioState = iota
	seekingParagraph
	collecting
	done
)

// bioScanner walks the token stream of a profile page. The biography starts
// at the first paragraph after the page heading and ends at the clearing
// line break that separates it from the talk list.
type bioScanner struct {
	state   bioState
	skip    string // raw-text element being skipped while collecting
	builder strings.Builder
}

// ExtractBio returns the biography text of a speaker profile page, or ""
// when the page has no heading or no paragraph after it.
func ExtractBio(r io.Reader) (string, error) {
	s := &bioScanner{}
	z := html.NewTokenizer(r)

	for s.state != done {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			break
		}
		s.step(tt, z.Token())
	}

	return s.text(), nil
}

func (s *bioScanner) step(tt html.TokenType, tok html.Token) {
	switch s.state {
	case seekingHeading:
		if isStart(tt) && tok.Data == "h1" {
			s.state = seekingParagraph
		}
	case seekingParagraph:
		switch {
		case isStart(tt) && tok.Data == "p":
			s.state = collecting
		case isStart(tt) && tok.Data == "br" && isClearBreak(tok):
			// No biography before the talk list
			s.state = done
		}
	case collecting:
		s.collect(tt, tok)
	}
}

func (s *bioScanner) collect(tt html.TokenType, tok html.Token) {
	if s.skip != "" {
		if tt == html.EndTagToken && tok.Data == s.skip {
			s.skip = ""
		}
		return
	}

	switch tt {
	case html.TextToken:
		s.builder.WriteString(strings.ReplaceAll(tok.Data, "\n", " "))
	case html.StartTagToken, html.SelfClosingTagToken:
		switch tok.Data {
		case "br":
			if isClearBreak(tok) {
				s.state = done
				return
			}
			s.builder.WriteByte('\n')
		case "script", "style":
			if tt == html.StartTagToken {
				s.skip = tok.Data
			}
		case "p", "div", "li", "ul", "ol", "h2", "h3", "h4":
			s.builder.WriteByte('\n')
		}
	case html.EndTagToken:
		switch tok.Data {
		case "p", "div", "li", "ul", "ol", "h2", "h3", "h4":
			s.builder.WriteByte('\n')
		}
	}
}

// text returns the collected biography with runs of blank space collapsed
// and one paragraph per line
func (s *bioScanner) text() string {
	lines := strings.Split(s.builder.String(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isStart(tt html.TokenType) bool {
	return tt == html.StartTagToken || tt == html.SelfClosingTagToken
}

func isClearBreak(tok html.Token) bool {
	for _, attr := range tok.Attr {
		if attr.Key == "style" && strings.Contains(strings.ToLower(attr.Val), "clear") {
			return true
		}
	}
	return false
}
