package cli

import (
	"sort"
	"strings"

	"github.com/EdwardBetts/fosdem-speakers/internal/aggregate"
)

// SortOrder represents the available track orderings
type SortOrder string

const (
	SortByRatio    SortOrder = "ratio"
	SortByName     SortOrder = "name"
	SortBySpeakers SortOrder = "speakers"
)

// Valid reports whether s is a known sort order
func (s SortOrder) Valid() bool {
	switch s {
	case SortByRatio, SortByName, SortBySpeakers:
		return true
	}
	return false
}

// sortTracks sorts tracks in place. SortByRatio keeps the ranked order.
func sortTracks(tracks []aggregate.TrackRatio, order SortOrder) {
	switch order {
	case SortByRatio:
		sort.SliceStable(tracks, func(i, j int) bool {
			if tracks[i].Ratio != tracks[j].Ratio {
				return tracks[i].Ratio > tracks[j].Ratio
			}
			return tracks[i].Track > tracks[j].Track
		})
	case SortByName:
		sort.SliceStable(tracks, func(i, j int) bool {
			return compareByName(tracks[i], tracks[j])
		})
	case SortBySpeakers:
		sort.SliceStable(tracks, func(i, j int) bool {
			ti, tj := tracks[i].Counts.Total(), tracks[j].Counts.Total()
			if ti != tj {
				return ti > tj
			}
			// If sizes are equal, sort by name
			return compareByName(tracks[i], tracks[j])
		})
	}
}

// compareByName orders tracks case-insensitively, falling back to the exact
// name so the result is deterministic
func compareByName(i, j aggregate.TrackRatio) bool {
	li, lj := strings.ToLower(i.Track), strings.ToLower(j.Track)
	if li != lj {
		return li < lj
	}
	return i.Track < j.Track
}
