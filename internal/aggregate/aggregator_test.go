package aggregate

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
	"github.com/EdwardBetts/fosdem-speakers/internal/storage"
)

// fakeFetcher serves pages from an in-memory map by writing them into the
// store the first time they are requested
type fakeFetcher struct {
	store     *storage.Storage
	directory string
	pages     map[string]string
	calls     map[string]int
	err       error
}

func newFakeFetcher(t *testing.T, directory string, pages map[string]string) *fakeFetcher {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error: %v", err)
	}
	return &fakeFetcher{
		store:     store,
		directory: directory,
		pages:     pages,
		calls:     make(map[string]int),
	}
}

func (f *fakeFetcher) write(path, body string) (string, error) {
	if _, err := f.store.Write(path, strings.NewReader(body)); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeFetcher) EnsureDirectory(year int) (string, error) {
	f.calls["directory"]++
	return f.write(f.store.DirectoryPagePath(year), f.directory)
}

func (f *fakeFetcher) EnsureSpeaker(year int, slug string) (string, error) {
	f.calls[slug]++
	if f.err != nil {
		return "", f.err
	}
	path, err := f.store.SpeakerPagePath(year, slug)
	if err != nil {
		return "", err
	}
	body, ok := f.pages[slug]
	if !ok {
		return path, nil
	}
	return f.write(path, body)
}

// recordingStore records every path opened through it
type recordingStore struct {
	*storage.Storage
	opened []string
}

func (r *recordingStore) Open(path string) (io.ReadCloser, error) {
	r.opened = append(r.opened, path)
	return r.Storage.Open(path)
}

func newResolver(t *testing.T) *gender.Resolver {
	t.Helper()
	table, err := gender.DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable() error: %v", err)
	}
	parser, err := gender.DefaultHumanNameParser()
	if err != nil {
		t.Fatalf("DefaultHumanNameParser() error: %v", err)
	}
	return gender.NewResolver(gender.NewEstimator(table, parser))
}

const directoryPage = `<ul>
  <li><a href="/2023/schedule/speaker/fosdem_staff/">FOSDEM Staff</a></li>
  <li><a href="/2023/schedule/speaker/alex_river/">Alex River</a></li>
  <li><a href="/2023/schedule/speaker/john_smith/">John Smith</a></li>
</ul>`

func TestAggregator_Year(t *testing.T) {
	f := newFakeFetcher(t, directoryPage, map[string]string{
		"alex_river": `<h1>Alex River</h1><p>She is a researcher at a university.</p><br style="clear: both;"/>
			<table><tr><td><a href="/2023/schedule/track/main_track_1/">Main Track</a></td></tr>
			<tr><td><a href="/2023/schedule/track/rust/">Rust</a></td></tr></table>`,
		"john_smith": `<h1>John Smith</h1><br style="clear: both;"/>
			<table><tr><td><a href="/2023/schedule/track/rust/">Rust</a></td></tr></table>`,
	})

	result, err := New(f, f.store, newResolver(t)).Year(2023)
	if err != nil {
		t.Fatalf("Year() error: %v", err)
	}

	if result.Year != 2023 {
		t.Errorf("Year = %d, want 2023", result.Year)
	}
	if result.Total() != 2 {
		t.Fatalf("Total() = %d, want 2", result.Total())
	}
	if result.Counts[gender.Female] != 1 || result.Counts[gender.Male] != 1 {
		t.Errorf("Counts = %v, want female:1 male:1", result.Counts)
	}
	if result.Counts.Total() != result.Total() {
		t.Errorf("Counts.Total() = %d, want %d", result.Counts.Total(), result.Total())
	}
	if math.Abs(result.Ratio()-0.5) > 1e-9 {
		t.Errorf("Ratio() = %v, want 0.5", result.Ratio())
	}

	alex := result.Speakers[0]
	if alex.Slug != "alex_river" || alex.Gender != gender.Female || alex.Source != gender.SourceBio {
		t.Errorf("first speaker = %+v, want alex_river female from bio", alex)
	}
	john := result.Speakers[1]
	if john.Gender != gender.Male || john.Source != gender.SourceName {
		t.Errorf("second speaker = %+v, want male from name", john)
	}

	if got := result.Tracks["Rust"].Total(); got != 2 {
		t.Errorf("Rust total = %d, want 2", got)
	}
	if got := result.Tracks["Main track"][gender.Female]; got != 1 {
		t.Errorf("Main track female = %d, want 1", got)
	}

	if f.calls["fosdem_staff"] != 0 {
		t.Error("staff page was requested")
	}
}

func TestAggregator_FetchErrorAborts(t *testing.T) {
	f := newFakeFetcher(t, directoryPage, nil)
	f.err = errors.New("connection refused")

	_, err := New(f, f.store, newResolver(t)).Year(2023)
	if err == nil {
		t.Fatal("Year() expected error, got nil")
	}
	if !errors.Is(err, f.err) {
		t.Errorf("error = %v, want wrapped %v", err, f.err)
	}
}

func TestAggregator_MissingPageIsFatal(t *testing.T) {
	f := newFakeFetcher(t, directoryPage, map[string]string{})

	if _, err := New(f, f.store, newResolver(t)).Year(2023); err == nil {
		t.Fatal("Year() with a missing cached page expected error, got nil")
	}
}

func TestAggregator_ReadsThroughStore(t *testing.T) {
	f := newFakeFetcher(t, directoryPage, map[string]string{
		"alex_river": `<h1>Alex River</h1><p>She writes Rust.</p>`,
		"john_smith": `<h1>John Smith</h1>`,
	})
	store := &recordingStore{Storage: f.store}

	if _, err := New(f, store, newResolver(t)).Year(2023); err != nil {
		t.Fatalf("Year() error: %v", err)
	}

	alexPath, _ := f.store.SpeakerPagePath(2023, "alex_river")
	johnPath, _ := f.store.SpeakerPagePath(2023, "john_smith")
	want := []string{f.store.DirectoryPagePath(2023), alexPath, johnPath}
	if len(store.opened) != len(want) {
		t.Fatalf("opened %v, want %v", store.opened, want)
	}
	for i := range want {
		if store.opened[i] != want[i] {
			t.Errorf("opened[%d] = %q, want %q", i, store.opened[i], want[i])
		}
	}
}
