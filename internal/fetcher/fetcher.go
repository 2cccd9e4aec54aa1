package fetcher

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EdwardBetts/fosdem-speakers/internal/logger"
	"github.com/EdwardBetts/fosdem-speakers/internal/storage"
)

const (
	BaseURL      = "https://fosdem.org"
	UserAgent    = "fosdem-speakers/1.0 (github.com/EdwardBetts/fosdem-speakers)"
	Timeout      = 30 * time.Second
	DefaultDelay = 50 * time.Millisecond
)

// HTTPStatusError is returned when the server answers with a non-200 status
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Fetcher ensures pages are present in the local cache
type Fetcher struct {
	client    *http.Client
	store     *storage.Storage
	baseURL   string
	userAgent string
	delay     time.Duration
	sleep     func(time.Duration)
	metrics   *logger.Metrics
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithBaseURL points the fetcher at another host, e.g. a mirror or test server
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithDelay sets the pause after every network fetch
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.delay = d }
}

// WithSleep replaces time.Sleep, for tests
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *Fetcher) { f.sleep = sleep }
}

// WithMetrics records fetch counters on m instead of the package default
func WithMetrics(m *logger.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// New creates a new Fetcher writing into store
func New(store *storage.Storage, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		store:     store,
		baseURL:   BaseURL,
		userAgent: UserAgent,
		delay:     DefaultDelay,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DirectoryURL returns the URL of the speaker directory for year
func (f *Fetcher) DirectoryURL(year int) string {
	return fmt.Sprintf("%s/%d/schedule/speakers/", f.baseURL, year)
}

// SpeakerURL returns the URL of a speaker's profile page
func (f *Fetcher) SpeakerURL(year int, slug string) string {
	return fmt.Sprintf("%s/%d/schedule/speaker/%s/", f.baseURL, year, url.PathEscape(slug))
}

// EnsureDirectory makes sure the speaker directory for year is cached and
// returns its local path
func (f *Fetcher) EnsureDirectory(year int) (string, error) {
	return f.ensure(f.store.DirectoryPagePath(year), f.DirectoryURL(year))
}

// EnsureSpeaker makes sure a speaker's profile page is cached and returns
// its local path
func (f *Fetcher) EnsureSpeaker(year int, slug string) (string, error) {
	path, err := f.store.SpeakerPagePath(year, slug)
	if err != nil {
		return "", err
	}
	return f.ensure(path, f.SpeakerURL(year, slug))
}

// ensure returns path untouched when it exists, otherwise downloads pageURL
// into it and waits for the configured delay
func (f *Fetcher) ensure(path, pageURL string) (string, error) {
	exists, err := f.store.Exists(path)
	if err != nil {
		return "", err
	}
	if exists {
		f.incr("fetch.cache_hit")
		return path, nil
	}

	logger.Info("Downloading page", logger.Fields{"url": pageURL, "path": path})

	start := time.Now()
	if err := f.download(path, pageURL); err != nil {
		return "", err
	}
	f.incr("fetch.network")
	f.timing("fetch.duration", time.Since(start))

	if f.delay > 0 {
		f.sleep(f.delay)
	}

	return path, nil
}

func (f *Fetcher) download(path, pageURL string) error {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	if _, err := f.store.Write(path, resp.Body); err != nil {
		return fmt.Errorf("caching page: %w", err)
	}
	return nil
}

func (f *Fetcher) incr(name string) {
	if f.metrics != nil {
		f.metrics.IncrCounter(name)
		return
	}
	logger.IncrCounter(name)
}

func (f *Fetcher) timing(name string, d time.Duration) {
	if f.metrics != nil {
		f.metrics.RecordTiming(name, d)
		return
	}
	logger.RecordTiming(name, d)
}
