package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	directoryPageName = "speakers.html"
	speakerPagesDir   = "html"
	pageExt           = ".html"
)

// ErrInvalidSlug is returned for speaker identifiers that cannot be used as
// a file name
var ErrInvalidSlug = errors.New("invalid speaker slug")

// Storage handles the cache directory tree
type Storage struct {
	dataDir string
}

// New creates a new Storage instance rooted at dataDir
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}
	if dataDir == "" {
		dataDir = "."
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// DataDir returns the root of the cache tree
func (s *Storage) DataDir() string {
	return s.dataDir
}

// YearDir returns the directory holding one year's pages
func (s *Storage) YearDir(year int) string {
	return filepath.Join(s.dataDir, strconv.Itoa(year))
}

// DirectoryPagePath returns the path of the cached speaker directory page
func (s *Storage) DirectoryPagePath(year int) string {
	return filepath.Join(s.YearDir(year), directoryPageName)
}

// SpeakerPagePath returns the path of a cached speaker profile page
func (s *Storage) SpeakerPagePath(year int, slug string) (string, error) {
	if !ValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return filepath.Join(s.YearDir(year), speakerPagesDir, slug+pageExt), nil
}

// ValidSlug reports whether slug is safe to use as a file name
func ValidSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") || strings.Contains(slug, "..") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`+"\x00")
}

// Exists reports whether a regular file exists at path
func (s *Storage) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("checking %s: is a directory", path)
	}
	return true, nil
}

// Open opens a cached page for reading. A missing page is an error.
func (s *Storage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cached page: %w", err)
	}
	return f, nil
}

// Write stores body at path, creating parent directories as needed.
// The content lands under a temporary name first and is renamed into place.
func (s *Storage) Write(path string, body io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()        // nolint:errcheck
		os.Remove(tmpName) // nolint:errcheck
		return n, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return n, fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return n, fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return n, fmt.Errorf("renaming into %s: %w", path, err)
	}

	return n, nil
}

// CachedSpeakers returns the slugs that have a cached profile page for year,
// sorted by name. A year with no cache yields an empty list.
func (s *Storage) CachedSpeakers(year int) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.YearDir(year), speakerPagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing cached pages: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, pageExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, pageExt))
	}
	sort.Strings(slugs)

	return slugs, nil
}
