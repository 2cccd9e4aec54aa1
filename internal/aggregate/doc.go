// Package aggregate drives the per-year pipeline and tallies the results.
//
// For one year the Aggregator makes sure the speaker directory and every
// profile page are cached, resolves each speaker's gender and accumulates
// the labels overall and per track. The female ratio deliberately leaves
// speakers of unknown gender out of the denominator.
package aggregate
