package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/EdwardBetts/fosdem-speakers/internal/aggregate"
	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// YearSummary is the reported outcome for one year
type YearSummary struct {
	Year     int                       `json:"year"`
	Speakers int                       `json:"speakers"`
	Male     int                       `json:"male"`
	Female   int                       `json:"female"`
	Unknown  int                       `json:"unknown"`
	Ratio    float64                   `json:"female_ratio"`
	Details  []aggregate.SpeakerResult `json:"details,omitempty"`
}

// NewYearSummary condenses an aggregate result
func NewYearSummary(yr *aggregate.YearResult) YearSummary {
	return YearSummary{
		Year:     yr.Year,
		Speakers: yr.Total(),
		Male:     yr.Counts[gender.Male],
		Female:   yr.Counts[gender.Female],
		Unknown:  yr.Counts[gender.Unknown],
		Ratio:    yr.Ratio(),
		Details:  yr.Speakers,
	}
}

// YearsResult contains the data for the default command
type YearsResult struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Years       []YearSummary `json:"years"`
}

// TracksResult contains the per-track breakdown of one year
type TracksResult struct {
	Year   int                    `json:"year"`
	Tracks []aggregate.TrackRatio `json:"tracks"`
}

// YearStatus describes the cache contents for one year
type YearStatus struct {
	Year            int  `json:"year"`
	DirectoryCached bool `json:"directory_cached"`
	SpeakerPages    int  `json:"speaker_pages"`
}

// StatusResult contains the data for the status command
type StatusResult struct {
	DataDir string       `json:"data_dir"`
	Years   []YearStatus `json:"years"`
}

// WriteYears writes a full years result in the specified format
func WriteYears(w io.Writer, result *YearsResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		for _, summary := range result.Years {
			if err := writeYearText(w, summary, verbose); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteTracks writes a tracks result in the specified format
func WriteTracks(w io.Writer, result *TracksResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeTracksText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteStatus writes a status result in the specified format
func WriteStatus(w io.Writer, result *StatusResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeStatusText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// formatPercent renders a ratio as a percentage with two decimals
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func writeYearText(w io.Writer, s YearSummary, verbose bool) error {
	if _, err := fmt.Fprintf(w, "%d: %d speakers %s female\n", s.Year, s.Speakers, formatPercent(s.Ratio)); err != nil {
		return err
	}
	if verbose {
		_, err := fmt.Fprintf(w, "      male: %d, female: %d, unknown: %d\n", s.Male, s.Female, s.Unknown)
		return err
	}
	return nil
}

func writeTracksText(w io.Writer, result *TracksResult) error {
	if len(result.Tracks) == 0 {
		_, err := fmt.Fprintf(w, "No tracks found for %d.\n", result.Year)
		return err
	}

	for _, tr := range result.Tracks {
		if _, err := fmt.Fprintf(w, "%6s  %s\n", formatPercent(tr.Ratio), tr.Track); err != nil {
			return err
		}
	}
	return nil
}

func writeStatusText(w io.Writer, result *StatusResult) error {
	if result.DataDir != "" {
		if _, err := fmt.Fprintf(w, "Data directory: %s\n", result.DataDir); err != nil {
			return err
		}
	}
	for _, st := range result.Years {
		dir := "missing"
		if st.DirectoryCached {
			dir = "cached"
		}
		if _, err := fmt.Fprintf(w, "%d: directory %s, %d speaker pages\n", st.Year, dir, st.SpeakerPages); err != nil {
			return err
		}
	}
	return nil
}
