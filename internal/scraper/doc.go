// Package scraper extracts speakers, biographies and tracks from cached
// FOSDEM schedule pages.
//
// The speaker directory lists every speaker of a year as an anchor to their
// profile page. A profile page carries a biography between the page heading
// and a clearing line break, followed by a table of talks that link to their
// tracks. Parsing works on any io.Reader so callers decide where pages come
// from; the Read* helpers open cached files directly.
package scraper
