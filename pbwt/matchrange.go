package pbwt

// This file adds convenience comparison methods to SiteRange, in the
// style of biopb.Coord's Compare/LT/LE/GE/GT/EQ family.

// SiteRange is a half-open site interval [Start, End), used to order and
// compare match spans independent of which haplotypes they belong to.
type SiteRange struct {
	Start, End int
}

// Compare returns (negative, 0, positive) if (r<r1, r=r1, r>r1)
// respectively, ordering first by Start, then by End.
func (r SiteRange) Compare(r1 SiteRange) int {
	if r.Start != r1.Start {
		return r.Start - r1.Start
	}
	return r.End - r1.End
}

// LT returns true iff r < r1.
func (r SiteRange) LT(r1 SiteRange) bool { return r.Compare(r1) < 0 }

// LE returns true iff r <= r1.
func (r SiteRange) LE(r1 SiteRange) bool { return r.Compare(r1) <= 0 }

// GE returns true iff r >= r1.
func (r SiteRange) GE(r1 SiteRange) bool { return r.Compare(r1) >= 0 }

// GT returns true iff r > r1.
func (r SiteRange) GT(r1 SiteRange) bool { return r.Compare(r1) > 0 }

// EQ returns true iff r == r1.
func (r SiteRange) EQ(r1 SiteRange) bool { return r.Compare(r1) == 0 }

// Len returns End - Start.
func (r SiteRange) Len() int { return r.End - r.Start }

// Overlaps returns true iff r and r1 share at least one site.
func (r SiteRange) Overlaps(r1 SiteRange) bool {
	return r.Start < r1.End && r1.Start < r.End
}

// Range returns m's match span as a SiteRange.
func (m Match) Range() SiteRange { return SiteRange{Start: m.Start, End: m.End} }
