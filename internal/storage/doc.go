// Package storage manages the on-disk page cache.
//
// Every page fetched from the conference website is stored verbatim and is
// never fetched again. The layout under the data directory is:
//
//	<year>/speakers.html        the speaker directory for that year
//	<year>/html/<slug>.html     one profile page per speaker
//
// Files are written through a temporary file and renamed into place, so an
// interrupted run never leaves a truncated page that would later be trusted.
package storage
