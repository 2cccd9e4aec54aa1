// Package fetcher downloads conference pages into the local page cache.
//
// Each page is fetched at most once for the lifetime of a data directory.
// When the cached file exists the Fetcher returns its path without touching
// the network; otherwise it issues a single GET, stores the body verbatim and
// then pauses for a short delay to keep the request rate polite. There are no
// retries: a failed fetch is returned to the caller.
package fetcher
