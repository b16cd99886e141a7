// Package service provides the fragmenter that splits sealed blobs into parts and
// joins them back.
package service

import (
	"fmt"
	"sort"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Fragmenter splits a blob into a fixed number of contiguous parts.
//
// Each part is ceil(len/parts) bytes except the tail. When parts > len the
// trailing parts are empty: part i spans [min(i*size, len), min((i+1)*size, len)).
// An empty blob yields parts empty slices.
type Fragmenter struct{}

// NewFragmenter creates a Fragmenter.
func NewFragmenter() *Fragmenter {
	return &Fragmenter{}
}

// Split returns exactly parts slices of blob. Parts alias blob; callers that keep
// them past blob's lifetime must copy.
func (f *Fragmenter) Split(blob []byte, parts int) ([]transferDomain.Part, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: %d", transferDomain.ErrInvalidPartCount, parts)
	}

	n := len(blob)
	size := (n + parts - 1) / parts

	out := make([]transferDomain.Part, parts)
	for i := range out {
		start := min(i*size, n)
		end := min(start+size, n)
		out[i] = transferDomain.Part{Index: i, Data: blob[start:end:end]}
	}
	return out, nil
}

// Combine concatenates parts in ascending index order regardless of input order.
// The caller guarantees a dense 0..n-1 index set.
func (f *Fragmenter) Combine(parts []transferDomain.Part) []byte {
	sorted := make([]transferDomain.Part, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	total := 0
	for _, p := range sorted {
		total += len(p.Data)
	}

	blob := make([]byte, 0, total)
	for _, p := range sorted {
		blob = append(blob, p.Data...)
	}
	return blob
}
