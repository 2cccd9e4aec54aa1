package scraper

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MainTrackName is the display name shared by every main track room
const MainTrackName = "Main track"

var trackHrefPattern = regexp.MustCompile(`^/\d+/schedule/track/(.+)/$`)

// ExtractTracks returns the names of the tracks a speaker's talks belong to,
// deduplicated and sorted.
func ExtractTracks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return tracksFromDocument(doc), nil
}

func tracksFromDocument(doc *goquery.Document) []string {
	set := make(map[string]bool)

	doc.Find("td > a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		matches := trackHrefPattern.FindStringSubmatch(strings.TrimSpace(href))
		if matches == nil {
			return
		}
		if name, ok := TrackName(matches[1], strings.TrimSpace(sel.Text())); ok {
			set[name] = true
		}
	})

	tracks := make([]string, 0, len(set))
	for name := range set {
		tracks = append(tracks, name)
	}
	sort.Strings(tracks)

	return tracks
}

// TrackName maps a track key and its link text to the name used for
// reporting. It returns false for tracks left out of reporting: the "test"
// track and birds-of-a-feather sessions.
func TrackName(key, name string) (string, bool) {
	switch {
	case key == "test", strings.HasPrefix(key, "bofs_"):
		return "", false
	case strings.HasPrefix(key, "main_track"):
		// Main track is split over two rooms
		return MainTrackName, true
	default:
		return name, true
	}
}
