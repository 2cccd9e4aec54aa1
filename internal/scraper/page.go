package scraper

import (
	"bytes"
	"fmt"
	"io"
)

// Page is the information taken from one speaker profile page
type Page struct {
	Bio    string   `json:"bio"`
	Tracks []string `json:"tracks"`
}

// ParseSpeakerPage extracts the biography and tracks from a profile page
func ParseSpeakerPage(r io.Reader) (*Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading speaker page: %w", err)
	}

	bio, err := ExtractBio(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("extracting bio: %w", err)
	}

	tracks, err := ExtractTracks(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("extracting tracks: %w", err)
	}

	return &Page{Bio: bio, Tracks: tracks}, nil
}
