package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/EdwardBetts/fosdem-speakers/internal/aggregate"
	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
)

func TestNewYearSummary(t *testing.T) {
	yr := &aggregate.YearResult{
		Year: 2023,
		Speakers: []aggregate.SpeakerResult{
			{Slug: "a", Gender: gender.Female},
			{Slug: "b", Gender: gender.Male},
			{Slug: "c", Gender: gender.Male},
			{Slug: "d", Gender: gender.Unknown},
		},
		Counts: aggregate.Counts{gender.Female: 1, gender.Male: 2, gender.Unknown: 1},
	}

	s := NewYearSummary(yr)
	if s.Speakers != 4 || s.Male != 2 || s.Female != 1 || s.Unknown != 1 {
		t.Errorf("NewYearSummary() = %+v", s)
	}
	if want := 1.0 / 3.0; s.Ratio != want {
		t.Errorf("Ratio = %v, want %v", s.Ratio, want)
	}
}

func TestWriteYears_Text(t *testing.T) {
	result := &YearsResult{Years: []YearSummary{
		{Year: 2023, Speakers: 812, Male: 650, Female: 73, Unknown: 89, Ratio: 73.0 / 723.0},
		{Year: 2022, Speakers: 0},
	}}

	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{
			name: "plain",
			want: "2023: 812 speakers 10.10% female\n2022: 0 speakers 0.00% female\n",
		},
		{
			name:    "verbose",
			verbose: true,
			want: "2023: 812 speakers 10.10% female\n" +
				"      male: 650, female: 73, unknown: 89\n" +
				"2022: 0 speakers 0.00% female\n" +
				"      male: 0, female: 0, unknown: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteYears(&buf, result, FormatText, tt.verbose); err != nil {
				t.Fatalf("WriteYears() error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteYears() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestWriteYears_JSON(t *testing.T) {
	result := &YearsResult{Years: []YearSummary{
		{Year: 2023, Speakers: 3, Male: 1, Female: 1, Unknown: 1, Ratio: 0.5},
	}}

	var buf bytes.Buffer
	if err := WriteYears(&buf, result, FormatJSON, false); err != nil {
		t.Fatalf("WriteYears() error: %v", err)
	}

	var decoded YearsResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Years) != 1 {
		t.Fatalf("decoded %d years, want 1", len(decoded.Years))
	}
	got := decoded.Years[0]
	if got.Year != 2023 || got.Speakers != 3 || got.Female != 1 || got.Ratio != 0.5 {
		t.Errorf("decoded year = %+v", got)
	}
	if !strings.Contains(buf.String(), `"female_ratio": 0.5`) {
		t.Errorf("JSON output missing female_ratio:\n%s", buf.String())
	}
}

func TestWriteTracks_Text(t *testing.T) {
	result := &TracksResult{
		Year: 2023,
		Tracks: []aggregate.TrackRatio{
			{Track: "LLVM", Ratio: 1},
			{Track: "Rust", Ratio: 0.123456},
			{Track: "Kernel", Ratio: 0},
		},
	}

	var buf bytes.Buffer
	if err := WriteTracks(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteTracks() error: %v", err)
	}

	want := "100.00%  LLVM\n" +
		"12.35%  Rust\n" +
		" 0.00%  Kernel\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTracks() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteTracks_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, &TracksResult{Year: 2014}, FormatText); err != nil {
		t.Fatalf("WriteTracks() error: %v", err)
	}
	if got := buf.String(); got != "No tracks found for 2014.\n" {
		t.Errorf("WriteTracks() = %q", got)
	}
}

func TestWriteStatus_Text(t *testing.T) {
	result := &StatusResult{Years: []YearStatus{
		{Year: 2023, DirectoryCached: true, SpeakerPages: 12},
		{Year: 2022},
	}}

	var buf bytes.Buffer
	if err := WriteStatus(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteStatus() error: %v", err)
	}

	want := "2023: directory cached, 12 speaker pages\n" +
		"2022: directory missing, 0 speaker pages\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteStatus() =\n%q\nwant\n%q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYears(&buf, &YearsResult{}, OutputFormat("xml"), false); err == nil {
		t.Error("WriteYears() with unknown format should fail")
	}
	if err := WriteTracks(&buf, &TracksResult{}, OutputFormat("xml")); err == nil {
		t.Error("WriteTracks() with unknown format should fail")
	}
	if err := WriteStatus(&buf, &StatusResult{}, OutputFormat("xml")); err == nil {
		t.Error("WriteStatus() with unknown format should fail")
	}
}

func TestWriteStatus_DataDir(t *testing.T) {
	result := &StatusResult{
		DataDir: "/var/cache/fosdem",
		Years:   []YearStatus{{Year: 2023, DirectoryCached: true, SpeakerPages: 1}},
	}

	var buf bytes.Buffer
	if err := WriteStatus(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteStatus() error: %v", err)
	}

	want := "Data directory: /var/cache/fosdem\n" +
		"2023: directory cached, 1 speaker pages\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteStatus() =\n%q\nwant\n%q", got, want)
	}
}
