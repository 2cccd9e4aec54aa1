package aggregate

import (
	"fmt"
	"io"

	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
	"github.com/EdwardBetts/fosdem-speakers/internal/logger"
	"github.com/EdwardBetts/fosdem-speakers/internal/scraper"
)

// PageFetcher makes pages available in the local cache and returns their paths
type PageFetcher interface {
	EnsureDirectory(year int) (string, error)
	EnsureSpeaker(year int, slug string) (string, error)
}

// PageReader opens pages the fetcher has cached
type PageReader interface {
	Open(path string) (io.ReadCloser, error)
}

// SpeakerResult is the outcome for one speaker
type SpeakerResult struct {
	Slug   string        `json:"slug"`
	Name   string        `json:"name"`
	Gender gender.Label  `json:"gender"`
	Source gender.Source `json:"source"`
	Tracks []string      `json:"tracks,omitempty"`
}

// YearResult holds everything computed for one year
type YearResult struct {
	Year     int             `json:"year"`
	Speakers []SpeakerResult `json:"speakers"`
	Counts   Counts          `json:"counts"`
	Tracks   TrackCounts     `json:"tracks"`
}

// Total returns the number of speakers processed
func (r *YearResult) Total() int {
	return len(r.Speakers)
}

// Ratio returns the female ratio for the whole year
func (r *YearResult) Ratio() float64 {
	return r.Counts.Ratio()
}

// Aggregator runs the fetch, parse and classify pipeline for a year
type Aggregator struct {
	fetcher  PageFetcher
	store    PageReader
	resolver *gender.Resolver
}

// New creates an Aggregator. Paths returned by fetcher are opened
// through store.
func New(fetcher PageFetcher, store PageReader, resolver *gender.Resolver) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		store:    store,
		resolver: resolver,
	}
}

// Year processes every speaker of year in directory order. Any fetch or
// parse failure aborts the year.
func (a *Aggregator) Year(year int) (*YearResult, error) {
	dirPath, err := a.fetcher.EnsureDirectory(year)
	if err != nil {
		return nil, fmt.Errorf("fetching speaker directory for %d: %w", year, err)
	}

	speakers, err := a.readSpeakers(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading speaker directory for %d: %w", year, err)
	}
	logger.SetGauge("year.speakers", float64(len(speakers)))

	result := &YearResult{
		Year:     year,
		Speakers: make([]SpeakerResult, 0, len(speakers)),
		Counts:   make(Counts),
		Tracks:   make(TrackCounts),
	}

	for _, sp := range speakers {
		sr, err := a.speaker(year, sp)
		if err != nil {
			return nil, err
		}

		result.Speakers = append(result.Speakers, *sr)
		result.Counts.Add(sr.Gender)
		result.Tracks.Add(sr.Tracks, sr.Gender)
	}

	fields := logger.Fields{"year": year, "speakers": result.Total()}
	for _, label := range gender.Labels() {
		fields[string(label)] = result.Counts[label]
	}
	logger.Debug("Year processed", fields)

	return result, nil
}

func (a *Aggregator) speaker(year int, sp scraper.Speaker) (*SpeakerResult, error) {
	pagePath, err := a.fetcher.EnsureSpeaker(year, sp.Slug)
	if err != nil {
		return nil, fmt.Errorf("fetching speaker %s: %w", sp.Slug, err)
	}

	page, err := a.readPage(pagePath)
	if err != nil {
		return nil, fmt.Errorf("reading speaker %s: %w", sp.Slug, err)
	}

	label, source := a.resolver.ResolveWithSource(sp.Name, page.Bio)
	logger.Debug("Speaker classified", logger.Fields{
		"year":   year,
		"slug":   sp.Slug,
		"gender": string(label),
		"source": string(source),
	})

	return &SpeakerResult{
		Slug:   sp.Slug,
		Name:   sp.Name,
		Gender: label,
		Source: source,
		Tracks: page.Tracks,
	}, nil
}

func (a *Aggregator) readSpeakers(path string) ([]scraper.Speaker, error) {
	rc, err := a.store.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return scraper.ListSpeakers(rc)
}

func (a *Aggregator) readPage(path string) (*scraper.Page, error) {
	rc, err := a.store.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return scraper.ParseSpeakerPage(rc)
}

// Years returns the years from first down to last inclusive. When last is
// after first the range runs upwards instead.
func Years(first, last int) []int {
	if first >= last {
		years := make([]int, 0, first-last+1)
		for y := first; y >= last; y-- {
			years = append(years, y)
		}
		return years
	}

	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years
}
