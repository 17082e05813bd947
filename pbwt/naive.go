package pbwt

// NaiveMatch is the O(N*M*Q) baseline panel-vs-query matcher (spec.md
// §4.4, matchSequencesNaive). For every query it computes, at each site
// k, the longest match to any reference haplotype starting at or before
// k and one reference achieving that length (the bestEnd / bestSeq arrays
// below). A new match starts wherever bestSeq or bestEnd changes; for each
// one it reports the bestSeq reference and every other reference whose
// maximal match with the query has exactly the same span. This — not a
// per-pair maximal-run scan — is what
// makes it a true oracle for the other panel-vs-query matchers: a
// per-pair scan would report matches that are maximal for one reference
// row but not set-maximal across the whole panel.
func NaiveMatch(ref, query Panel, cfg Config, report Reporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	report = WithCheck(cfg, report)

	n := ref.NumSites()
	if query.NumSites() != n {
		return configErrorf("reference panel has %d sites, query panel has %d", n, query.NumSites())
	}
	refHaps, err := ref.Haplotypes()
	if err != nil {
		return err
	}
	queryHaps, err := query.Haplotypes()
	if err != nil {
		return err
	}
	m := ref.NumHaplotypes()

	bestEnd := make([]int, n+1)
	bestSeq := make([]int, n+1)
	for b, qhap := range queryHaps {
		for i := range bestEnd {
			bestEnd[i] = 0
			bestSeq[i] = 0
		}
		bestEnd[n] = n + 1

		for i, rhap := range refHaps {
			kLastMismatch := n
			for k := n - 1; k >= 0; k-- {
				if qhap[k] == rhap[k] {
					continue
				}
				if kLastMismatch > bestEnd[k+1] {
					for kk := k + 1; bestEnd[kk] <= kLastMismatch; kk++ {
						bestEnd[kk] = kLastMismatch
						bestSeq[kk] = i
					}
				}
				kLastMismatch = k
			}
			if kLastMismatch > bestEnd[0] {
				for kk := 0; bestEnd[kk] <= kLastMismatch; kk++ {
					bestEnd[kk] = kLastMismatch
					bestSeq[kk] = i
				}
			}
		}

		iBest := m
		for k := 0; k < n; k++ {
			if bestSeq[k] == iBest && (k == 0 || bestEnd[k] == bestEnd[k-1]) {
				continue
			}
			iBest = bestSeq[k]
			end := bestEnd[k]
			if end-k < cfg.L {
				continue
			}
			for i, rhap := range refHaps {
				if i != iBest && ((k > 0 && rhap[k-1] == qhap[k-1]) || (end < n && rhap[end] == qhap[end]) || string(rhap[k:end]) != string(qhap[k:end])) {
					continue
				}
				if err := report(i, b, k, end); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
