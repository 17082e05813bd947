package pbwt

import "sort"

// indexedTables holds the per-site PBWT arrays of a reference panel,
// precomputed once so that many queries can each be matched against the
// panel in O(N) time (spec.md §4.5, "algorithm 5", matchSequencesIndexed).
type indexedTables struct {
	a [][]int // a[k], len M, for k in [0, N]
	d [][]int // d[k], len M+1, for k in [0, N]
	u [][]int // u[k], len M+1, for k in [0, N)
	c []int   // c[k], count of zeros at site k, for k in [0, N)
}

func buildIndexedTables(p Panel) (*indexedTables, error) {
	cur, err := p.NewCursor()
	if err != nil {
		return nil, err
	}
	n := p.NumSites()
	t := &indexedTables{
		a: make([][]int, n+1),
		d: make([][]int, n+1),
		u: make([][]int, n),
		c: make([]int, n),
	}
	for k := 0; k <= n; k++ {
		t.a[k] = append([]int(nil), cur.A...)
		t.d[k] = append([]int(nil), cur.D...)
		if k < n {
			cur.CalculateU()
			t.u[k] = append([]int(nil), cur.U...)
			t.c[k] = cur.C
			if err := cur.Advance(); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *indexedTables) mapAt(k int, s uint8, i int) int {
	if s == 0 {
		return t.u[k][i]
	}
	return t.c[k] + i - t.u[k][i]
}

// IndexedMatch matches every haplotype of query against ref using the
// precomputed table of indexedTables, reporting every maximal match at
// least cfg.L sites long (spec.md §4.5, matchSequencesIndexed). Whenever
// the FM interval collapses, the upper and lower neighbor in the a[k+1]
// permutation are compared against the query haplotype directly to find
// the true (possibly earlier) start of the next extendible match, exactly
// as the original's e1/f1/g1 bookkeeping does.
func IndexedMatch(ref, query Panel, cfg Config, report Reporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	report = WithCheck(cfg, report)

	n := ref.NumSites()
	if query.NumSites() != n {
		return configErrorf("reference panel has %d sites, query panel has %d", n, query.NumSites())
	}
	t, err := buildIndexedTables(ref)
	if err != nil {
		return err
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

	var matches []Match
	for b, z := range queryHaps {
		f, g, e := 0, m, 0
		k := 0
		for ; k < n; k++ {
			s := z[k]
			f1 := t.mapAt(k, s, f)
			g1 := t.mapAt(k, s, g)
			if g1 > f1 {
				f, g = f1, g1
				continue
			}
			for i := f; i < g; i++ {
				if k-e >= cfg.L {
					matches = append(matches, Match{AIdx: t.a[k][i], BIdx: b, Start: e, End: k})
				}
			}
			// y[f1] and y[f1-1] diverge here, so this upper-bounds e.
			e1 := t.d[k+1][f1] - 1
			if f1 == m || (f1 > 0 && z[e1] == 0) {
				f1 = g1 - 1
				y := refHaps[t.a[k+1][f1]]
				for z[e1-1] == y[e1-1] {
					e1--
				}
				for t.d[k+1][f1] <= e1 {
					f1--
				}
			} else if f1 < m {
				g1 = f1 + 1
				y := refHaps[t.a[k+1][f1]]
				for z[e1-1] == y[e1-1] {
					e1--
				}
				for g1 < m && t.d[k+1][g1] <= e1 {
					g1++
				}
			}
			e, f, g = e1, f1, g1
		}
		for i := f; i < g; i++ {
			if n-e >= cfg.L {
				matches = append(matches, Match{AIdx: t.a[n][i], BIdx: b, Start: e, End: n})
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
	for _, m := range matches {
		if err := report(m.AIdx, m.BIdx, m.Start, m.End); err != nil {
			return err
		}
	}
	return nil
}
