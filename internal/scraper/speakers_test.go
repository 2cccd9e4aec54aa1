package scraper

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListSpeakers(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []Speaker
	}{
		{
			name: "staff entry filtered",
			html: `<ul>
				<li><a href="/2023/schedule/speaker/fosdem_staff/">FOSDEM Staff</a></li>
				<li><a href="/2023/schedule/speaker/alice/">Alice Example</a></li>
			</ul>`,
			want: []Speaker{{Slug: "alice", Name: "Alice Example"}},
		},
		{
			name: "document order kept",
			html: `<ul>
				<li><a href="/2019/schedule/speaker/zed/">Zed</a></li>
				<li><a href="/2019/schedule/speaker/amy/">Amy</a></li>
			</ul>`,
			want: []Speaker{{Slug: "zed", Name: "Zed"}, {Slug: "amy", Name: "Amy"}},
		},
		{
			name: "duplicates removed",
			html: `<ul>
				<li><a href="/2019/schedule/speaker/amy/">Amy</a></li>
				<li><a href="/2019/schedule/speaker/amy/">Amy again</a></li>
			</ul>`,
			want: []Speaker{{Slug: "amy", Name: "Amy"}},
		},
		{
			name: "non-matching links ignored",
			html: `<ul>
				<li><a href="/2019/schedule/track/kernel/">Kernel</a></li>
				<li><a href="/19/schedule/speaker/short_year/">Short</a></li>
				<li><a href="/2019/schedule/speaker/a/b/">Nested</a></li>
				<li>No link</li>
			</ul>
			<p><a href="/2019/schedule/speaker/para/">Para</a></p>`,
			want: []Speaker{},
		},
		{
			name: "entities decoded",
			html: `<ul><li><a href="/2020/schedule/speaker/tom/">Tom &amp; Jerry</a></li></ul>`,
			want: []Speaker{{Slug: "tom", Name: "Tom & Jerry"}},
		},
		{
			name: "empty page",
			html: ``,
			want: []Speaker{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListSpeakers(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("ListSpeakers() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListSpeakers() returned %d speakers (%v), want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("speaker[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestListSpeakers_Fixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", "speakers.html"))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	first, err := ListSpeakers(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ListSpeakers() error: %v", err)
	}

	want := []Speaker{
		{Slug: "jane_doe", Name: "Jane Doe"},
		{Slug: "john_smith", Name: "John Smith"},
		{Slug: "chlo_martin", Name: "Chloé Martin & Co"},
	}
	if len(first) != len(want) {
		t.Fatalf("ListSpeakers() returned %v, want %v", first, want)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("speaker[%d] = %+v, want %+v", i, first[i], want[i])
		}
	}

	// Re-reading yields the same sequence
	second, err := ListSpeakers(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ListSpeakers() second read error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("re-read speaker[%d] = %+v, want %+v", i, second[i], first[i])
		}
	}
}
