// Package bloom tracks crawl task keys already scheduled, using a Bloom
// filter so memory stays flat for large keyword expansions.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of task keys. A key reported as seen may be
// a false positive; a key reported as new never is.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n keys at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether key may have been recorded before, and records it.
func (f *Filter) Seen(key string) bool {
	return f.f.TestAndAddString(key)
}

// Len returns the approximate number of distinct keys recorded.
func (f *Filter) Len() uint {
	return uint(f.f.ApproximatedSize())
}
