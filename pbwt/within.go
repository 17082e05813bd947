package pbwt

// ThresholdMatches enumerates all pairs of reference haplotypes whose
// match spans at least L sites (spec.md §4.2, "algorithm 3′" in the
// original pbwtMatch.c — matchLongWithin2). It supersedes the simpler
// matchLongWithin1, which is not implemented here: that variant always
// reported start=0 instead of the true match start, a known limitation
// of the original source that this one fixes.
//
// L must be > 0; for L == 0 use MaximalMatches instead.
func ThresholdMatches(p Panel, cfg Config, report Reporter) error {
	if cfg.L <= 0 {
		return configErrorf("ThresholdMatches requires L > 0, got %d; use MaximalMatches for L == 0", cfg.L)
	}
	cur, err := p.NewCursor()
	if err != nil {
		return err
	}
	n := p.NumSites()
	for k := 0; k <= n; k++ {
		if err := thresholdSweepOneSite(cur, k, n, cfg.L, report); err != nil {
			return err
		}
		if k < n {
			if err := cur.Advance(); err != nil {
				return err
			}
		}
	}
	return nil
}

// thresholdSweepOneSite scans the block structure at site k, closing (and
// reporting) every block whose divergence exceeds k-threshold. The sweep
// runs through i==m, the sentinel row, so that a block still open at the
// bottom of the permutation is always closed before the function returns;
// without this, a match ending exactly at the panel's last block would
// never be reported. At k==n there is no site n to compare symbols
// against, so every pair in a closing block is treated as right-maximal
// (spec.md §4.2's k==N special case), rather than only pairs with
// differing symbols.
func thresholdSweepOneSite(cur *Cursor, k, n, threshold int, report Reporter) error {
	m := cur.M()
	atEnd := k == n
	i0 := 0
	na, nb := 0, 0
	for i := 0; i <= m; i++ {
		if i == m || cur.D[i] > k-threshold {
			if i > i0+1 && (atEnd || (na > 0 && nb > 0)) {
				for ia := i0; ia < i; ia++ {
					dmin := 0
					for ib := ia + 1; ib < i; ib++ {
						if cur.D[ib] > dmin {
							dmin = cur.D[ib]
						}
						if atEnd || cur.Y[ib] != cur.Y[ia] {
							a, b := cur.A[ia], cur.A[ib]
							if a > b {
								a, b = b, a
							}
							if err := report(a, b, dmin, k); err != nil {
								return err
							}
						}
					}
				}
			}
			na, nb = 0, 0
			i0 = i
		}
		if i < m && !atEnd {
			if cur.Y[i] == 0 {
				na++
			} else {
				nb++
			}
		}
	}
	return nil
}

// MaximalMatches enumerates every set-maximal match within the panel
// (spec.md §4.3, "algorithm 4", matchMaximalWithin). A match is
// set-maximal at site k if it cannot be extended past k without
// introducing a mismatch; at k == N every match is trivially
// right-maximal, since there is no site N to compare against.
func MaximalMatches(p Panel, cfg Config, report Reporter) error {
	cur, err := p.NewCursor()
	if err != nil {
		return err
	}
	n := p.NumSites()
	for k := 0; k <= n; k++ {
		if err := maximalSweepOneSite(cur, k, n, report); err != nil {
			return err
		}
		if k < n {
			if err := cur.Advance(); err != nil {
				return err
			}
		}
	}
	return nil
}

func maximalSweepOneSite(cur *Cursor, k, n int, report Reporter) error {
	m := cur.M()
	// A pair can be found from both of its rows; report it once per site,
	// lower row index first.
	seen := make(map[[2]int]bool)
	emit := func(a, b, start int) error {
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			return nil
		}
		seen[[2]int{a, b}] = true
		return report(a, b, start, k)
	}
	for i := 0; i < m; i++ {
		lo, hi := i-1, i+1 // exclusive bounds of the block extendible past k
		extends := false

		if cur.D[i] <= cur.D[i+1] {
			for lo >= 0 && cur.D[lo+1] <= cur.D[i] {
				if cur.Y[lo] == cur.Y[i] && k < n {
					extends = true
					break
				}
				lo--
			}
		}
		if !extends && cur.D[i] >= cur.D[i+1] {
			for hi < m && cur.D[hi] <= cur.D[i+1] {
				if cur.Y[hi] == cur.Y[i] && k < n {
					extends = true
					break
				}
				hi++
			}
		}
		if extends {
			continue
		}
		for j := lo + 1; j < i; j++ {
			if err := emit(cur.A[i], cur.A[j], cur.D[i]); err != nil {
				return err
			}
		}
		for j := i + 1; j < hi; j++ {
			if err := emit(cur.A[i], cur.A[j], cur.D[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// LongMatches is the top-level within-panel entry point (spec.md §4.2/4.3,
// pbwtLongMatches in the original): it dispatches to ThresholdMatches when
// cfg.L > 0, or MaximalMatches when cfg.L == 0, after validating cfg.
func LongMatches(p Panel, cfg Config, report Reporter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	report = WithCheck(cfg, report)
	if cfg.L > 0 {
		return ThresholdMatches(p, cfg, report)
	}
	return MaximalMatches(p, cfg, report)
}
