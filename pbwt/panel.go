package pbwt

// Panel is the abstract haplotype panel consumed by every matcher in this
// package. Concrete implementations (see encoding/pbwtio.MemPanel) own the
// actual symbol storage; the core algorithms here only ever read through
// this interface and the Cursor it produces.
type Panel interface {
	// NumHaplotypes returns M, the number of rows.
	NumHaplotypes() int
	// NumSites returns N, the number of sites (columns).
	NumSites() int
	// NewCursor returns a forward cursor positioned at site 0.
	NewCursor() (*Cursor, error)
	// Column fills out[i] with the symbol of haplotype order[i] at site k,
	// for i in [0, len(order)). len(out) must be >= len(order).
	Column(k int, order []int, out []uint8) error
	// Haplotypes materializes the full M x N symbol matrix, one row per
	// haplotype. It is used by the naive matcher and by check mode; callers
	// that don't need it should avoid paying for it.
	Haplotypes() ([][]uint8, error)
}
