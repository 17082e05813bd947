package pbwt

import "sort"

// SparseSweep matches query against ref using cfg.NSparse interleaved
// sub-panels, each built from every NSparse-th site of ref (spec.md §4.7,
// matchSequencesSweepSparse). Each sub-panel runs its own naked cursor
// (see NewNakedCursor, AdvanceInPlace) sweeping only the sites at its own
// phase, so its divergence values are expressed in "coarse site" units:
// SparseSweep rescales a coarse site index j at phase p back to a real
// site index as NSparse*j + p before reporting. Match boundaries are
// therefore only as precise as one coarse step, and a mismatch at a site
// outside a phase does not end that phase's matches.
//
// Matches are reported through a SparseReporter with isSparse always
// true, distinguishing them from the dense sweep's output when the two
// are merged by a caller.
func SparseSweep(ref, query Panel, cfg Config, sreport SparseReporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	n := ref.NumSites()
	if query.NumSites() != n {
		return configErrorf("reference panel has %d sites, query panel has %d", n, query.NumSites())
	}
	nSparse := cfg.NSparse
	refHaps, err := ref.Haplotypes()
	if err != nil {
		return err
	}
	queryHaps, err := query.Haplotypes()
	if err != nil {
		return err
	}
	m := ref.NumHaplotypes()

	type qstate struct{ f, g, e int } // e is in coarse-site units

	var matches []Match
	for phase := 0; phase < nSparse; phase++ {
		var realSites []int
		for s := phase; s < n; s += nSparse {
			realSites = append(realSites, s)
		}
		nc := len(realSites)
		if nc == 0 {
			continue
		}

		cur := NewNakedCursor(m)
		states := make([]qstate, len(queryHaps))
		for i := range states {
			states[i] = qstate{f: 0, g: m, e: 0}
		}

		for j := 0; j < nc; j++ {
			realSite := realSites[j]
			for pos, hapIdx := range cur.A {
				cur.Y[pos] = refHaps[hapIdx][realSite]
			}
			cur.C = countZeros(cur.Y)
			cur.CalculateU()

			for b, z := range queryHaps {
				st := &states[b]
				s := z[realSite]
				f1 := cur.Map(s, st.f)
				g1 := cur.Map(s, st.g)
				if f1 >= g1 {
					start := nSparse*st.e + phase
					end := nSparse*j + phase
					for i := st.f; i < st.g; i++ {
						if end-start >= cfg.L {
							matches = append(matches, Match{AIdx: cur.A[i], BIdx: b, Start: start, End: end})
						}
					}
					for f1 >= g1 {
						if st.f == 0 && st.g == m {
							break
						}
						takeLower := st.f > 0 && (st.g == m || cur.D[st.f] > cur.D[st.g])
						if takeLower {
							st.f--
						} else {
							st.g++
						}
						f1 = cur.Map(s, st.f)
						g1 = cur.Map(s, st.g)
					}
					st.e = j
					if f1 >= g1 {
						// No reference row carries s here: restart from
						// every row at the next coarse site.
						f1, g1 = 0, m
						st.e = j + 1
					}
				}
				st.f, st.g = f1, g1
			}
			cur.AdvanceInPlace(j)
		}

		for b, st := range states {
			start := nSparse*st.e + phase
			for i := st.f; i < st.g; i++ {
				if n-start >= cfg.L {
					matches = append(matches, Match{AIdx: cur.A[i], BIdx: b, Start: start, End: n})
				}
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		mi, mj := matches[i], matches[j]
		if mi.End != mj.End {
			return mi.End < mj.End
		}
		if mi.AIdx != mj.AIdx {
			return mi.AIdx < mj.AIdx
		}
		return mi.BIdx < mj.BIdx
	})
	for _, mm := range matches {
		if err := sreport(mm.AIdx, mm.BIdx, mm.Start, mm.End, true); err != nil {
			return err
		}
	}
	return nil
}
