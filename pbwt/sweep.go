package pbwt

// DynamicSweep matches every haplotype of query against ref in a single
// joint forward sweep of a reference Cursor and a query Cursor (spec.md
// §4.6, matchSequencesSweep), rather than IndexedMatch's precomputed
// per-site tables. Each query haplotype carries a single (f, d) state: the
// row, in the reference cursor's current permutation, of its best current
// match, and the site that match began at. Processing queries in the query
// cursor's own permutation order is a locality optimization (queries whose
// suffixes agree currently cluster together) and has no effect on
// correctness. This is O(N*(M+Q)) time and O(N+M+Q) memory: one site's
// worth of reference and query arrays, plus O(Q) per-query state — neither
// haplotype matrix is ever materialized in full.
func DynamicSweep(ref, query Panel, cfg Config, report Reporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	report = WithCheck(cfg, report)

	n := ref.NumSites()
	if query.NumSites() != n {
		return configErrorf("reference panel has %d sites, query panel has %d", n, query.NumSites())
	}
	m := ref.NumHaplotypes()
	qm := query.NumHaplotypes()

	cur, err := ref.NewCursor()
	if err != nil {
		return err
	}
	qcur, err := query.NewCursor()
	if err != nil {
		return err
	}

	f := make([]int, qm)
	d := make([]int, qm)

	for k := 0; k < n; k++ {
		for j := 0; j < qm; j++ {
			jj := qcur.A[j]
			x := qcur.Y[j]
			if cur.Y[f[jj]] == x {
				continue
			}

			iPlus := f[jj]
			found := false
			for {
				iPlus++
				if iPlus >= m || cur.D[iPlus] > d[jj] {
					break
				}
				if cur.Y[iPlus] == x {
					f[jj] = iPlus
					found = true
					break
				}
			}
			if found {
				continue
			}

			for i := f[jj]; i < iPlus; i++ {
				if k-d[jj] >= cfg.L {
					if err := report(cur.A[i], jj, d[jj], k); err != nil {
						return err
					}
				}
			}

			iMinus := f[jj]
			dPlus := k
			if iPlus < m {
				dPlus = cur.D[iPlus]
			}
			dMinus := cur.D[iMinus]
			for {
				if dMinus <= dPlus {
					i := -1
					for cur.D[iMinus] <= dMinus {
						iMinus--
						if cur.Y[iMinus] == x {
							i = iMinus
						}
					}
					if i >= 0 {
						f[jj] = i
						d[jj] = dMinus
						break
					}
					dMinus = cur.D[iMinus]
					continue
				}
				matched := false
				for iPlus < m && cur.D[iPlus] <= dPlus {
					if cur.Y[iPlus] == x {
						f[jj] = iPlus
						d[jj] = dPlus
						matched = true
						break
					}
					iPlus++
				}
				if matched {
					break
				}
				if iPlus == m {
					dPlus = k
				} else {
					dPlus = cur.D[iPlus]
				}
				if iMinus == 0 && iPlus == m {
					d[jj] = k + 1
					break
				}
			}
		}

		cur.CalculateU()
		for j := 0; j < qm; j++ {
			jj := qcur.A[j]
			f[jj] = cur.Map(qcur.Y[j], f[jj])
			if f[jj] == m {
				f[jj] = 0
			}
		}
		if err := cur.Advance(); err != nil {
			return err
		}
		if err := qcur.Advance(); err != nil {
			return err
		}
	}

	for j := 0; j < qm; j++ {
		jj := qcur.A[j]
		if n-d[jj] >= cfg.L {
			if err := report(cur.A[f[jj]], jj, d[jj], n); err != nil {
				return err
			}
		}
		for i := f[jj]; i+1 < m && cur.D[i+1] <= d[jj]; i++ {
			if n-d[jj] >= cfg.L {
				if err := report(cur.A[i+1], jj, d[jj], n); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
