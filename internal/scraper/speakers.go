package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StaffSlug is the directory entry for the organising team, not a speaker
const StaffSlug = "fosdem_staff"

var speakerHrefPattern = regexp.MustCompile(`^/\d{4}/schedule/speaker/([^/]+)/$`)

// Speaker is one entry from the speaker directory
type Speaker struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ListSpeakers parses a speaker directory page and returns its speakers in
// document order. The staff entry is skipped and repeated slugs are kept
// only at their first position.
func ListSpeakers(r io.Reader) ([]Speaker, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	speakers := make([]Speaker, 0)
	seen := make(map[string]bool)

	doc.Find("li > a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		matches := speakerHrefPattern.FindStringSubmatch(strings.TrimSpace(href))
		if matches == nil {
			return
		}

		slug := matches[1]
		if slug == StaffSlug || seen[slug] {
			return
		}
		seen[slug] = true

		speakers = append(speakers, Speaker{
			Slug: slug,
			Name: strings.TrimSpace(sel.Text()),
		})
	})

	return speakers, nil
}
