package aggregate

import (
	"sort"

	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
)

// Counts tallies speakers per gender label
type Counts map[gender.Label]int

// Add counts one speaker. Labels outside male/female are counted as unknown.
func (c Counts) Add(label gender.Label) {
	if !label.Decided() {
		label = gender.Unknown
	}
	c[label]++
}

// Total returns the number of speakers counted
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Ratio returns female / (male + female). Speakers of unknown gender are not
// part of the denominator. With no male or female speakers the ratio is 0.
func (c Counts) Ratio() float64 {
	male := c[gender.Male]
	female := c[gender.Female]
	if male+female == 0 {
		return 0
	}
	return float64(female) / float64(male+female)
}

// TrackCounts tallies speakers per track. A speaker with talks in several
// tracks is counted once in each of them.
type TrackCounts map[string]Counts

// Add counts one speaker in every track listed
func (t TrackCounts) Add(tracks []string, label gender.Label) {
	for _, track := range tracks {
		counts, ok := t[track]
		if !ok {
			counts = make(Counts)
			t[track] = counts
		}
		counts.Add(label)
	}
}

// TrackRatio is one line of the per-track report
type TrackRatio struct {
	Track  string  `json:"track"`
	Ratio  float64 `json:"ratio"`
	Counts Counts  `json:"counts"`
}

// Ranked returns every track sorted by descending female ratio. Tracks with
// equal ratios come in descending name order, so the whole list is the
// (ratio, name) pair in reverse.
func (t TrackCounts) Ranked() []TrackRatio {
	ranked := make([]TrackRatio, 0, len(t))
	for track, counts := range t {
		ranked = append(ranked, TrackRatio{
			Track:  track,
			Ratio:  counts.Ratio(),
			Counts: counts,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Ratio != ranked[j].Ratio {
			return ranked[i].Ratio > ranked[j].Ratio
		}
		return ranked[i].Track > ranked[j].Track
	})

	return ranked
}
