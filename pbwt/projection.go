package pbwt

// projectedPanel restricts an underlying Panel to a subset of its sites,
// addressed by position within that subset rather than by original site
// index. It exists so that the indexed matcher's machinery (buildIndexedTables,
// IndexedMatch) can be reused unchanged over a reduced site set.
type projectedPanel struct {
	underlying Panel
	sites      []int
}

func newProjectedPanel(p Panel, sites []int) *projectedPanel {
	return &projectedPanel{underlying: p, sites: sites}
}

func (pp *projectedPanel) NumHaplotypes() int { return pp.underlying.NumHaplotypes() }
func (pp *projectedPanel) NumSites() int      { return len(pp.sites) }

func (pp *projectedPanel) NewCursor() (*Cursor, error) { return NewCursor(pp) }

func (pp *projectedPanel) Column(k int, order []int, out []uint8) error {
	if k < 0 || k >= len(pp.sites) {
		return structuralErrorf("projected column %d out of range [0,%d)", k, len(pp.sites))
	}
	return pp.underlying.Column(pp.sites[k], order, out)
}

func (pp *projectedPanel) Haplotypes() ([][]uint8, error) {
	full, err := pp.underlying.Haplotypes()
	if err != nil {
		return nil, err
	}
	out := make([][]uint8, len(full))
	for i, row := range full {
		projected := make([]uint8, len(pp.sites))
		for j, s := range pp.sites {
			projected[j] = row[s]
		}
		out[i] = projected
	}
	return out, nil
}

// validateSites checks that sites is strictly increasing and within [0, n).
func validateSites(sites []int, n int) error {
	prev := -1
	for _, s := range sites {
		if s <= prev || s >= n {
			return configErrorf("projection sites must be strictly increasing and within [0,%d), got %v", n, sites)
		}
		prev = s
	}
	return nil
}

// SelectSitesByStride returns every stride-th site index in [0, n), the
// simplest of the original getSiteIndices selection strategies: a uniform
// thinning of the site axis.
func SelectSitesByStride(n, stride int) ([]int, error) {
	if stride <= 0 {
		return nil, configErrorf("stride must be > 0, got %d", stride)
	}
	var sites []int
	for s := 0; s < n; s += stride {
		sites = append(sites, s)
	}
	return sites, nil
}

// SelectSitesByFrequency returns the sites of p whose minor allele count
// (the smaller of the zero-count and one-count) is at least minCount,
// mirroring getSiteIndices' frequency-based projection: sites too close
// to monomorphic carry little information for long-match detection and
// are dropped to shrink the projected panel.
func SelectSitesByFrequency(p Panel, minCount int) ([]int, error) {
	m, n := p.NumHaplotypes(), p.NumSites()
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	col := make([]uint8, m)
	var sites []int
	for k := 0; k < n; k++ {
		if err := p.Column(k, order, col); err != nil {
			return nil, err
		}
		zeros := countZeros(col)
		ones := m - zeros
		minor := zeros
		if ones < minor {
			minor = ones
		}
		if minor >= minCount {
			sites = append(sites, k)
		}
	}
	return sites, nil
}

// ProjectedMatch matches query against ref restricted to a caller-supplied
// projection of sites (spec.md §4.8, matchSequencesLong / getSiteIndices):
// both panels are reduced to the columns named by sites, and IndexedMatch
// runs over just that reduced site set. This lets a caller trade exact
// boundary precision for speed when only a subset of sites (e.g., common
// variants, or every k-th site) is of interest.
//
// Reported Start/End are indices into sites, not into the original
// panels' site numbering; callers needing real coordinates must map them
// back through sites themselves, i.e. realSite := sites[projectedIndex].
func ProjectedMatch(ref, query Panel, sites []int, cfg Config, report Reporter) error {
	if err := validateSites(sites, ref.NumSites()); err != nil {
		return err
	}
	if err := validateSites(sites, query.NumSites()); err != nil {
		return err
	}
	return IndexedMatch(newProjectedPanel(ref, sites), newProjectedPanel(query, sites), cfg, report)
}
