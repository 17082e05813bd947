package pbwt

import (
	"bufio"
	"fmt"
	"io"
)

// Match is one reported match: haplotype row AIdx matches row BIdx over
// the half-open site interval [Start, End).
type Match struct {
	AIdx, BIdx int
	Start, End int
}

// Reporter receives one match at a time. IndexedMatch (and so
// ProjectedMatch) and SparseSweep sort their matches by increasing End,
// ties broken by ascending AIdx then ascending BIdx; the other matchers
// report matches in the order their sweep finds them, which is not sorted
// that way. Returning a non-nil error aborts the matcher that called it.
type Reporter func(aIdx, bIdx, start, end int) error

// SparseReporter is Reporter's counterpart for the sparse sweep (§4.7),
// which additionally reports whether a match originated from a sparse
// sub-panel.
type SparseReporter func(aIdx, bIdx, start, end int, isSparse bool) error

// Config carries the options of §6 that are threaded through the
// matchers as an explicit value, replacing the module-level globals
// (nSparseStore, Ncheck, totLen, nTot, ...) of the original C
// implementation.
type Config struct {
	// L is the within-panel length threshold; 0 means report only
	// set-maximal matches. Must be >= 0.
	L int
	// NSparse is the sparse-sweep stride; 1 disables sparse sub-panels.
	// Must be >= 1.
	NSparse int
	// Check enables post-report verification: every reported match is
	// checked against CheckHapsA/CheckHapsB for being a true, maximal match.
	Check bool
	// CheckHapsA, CheckHapsB are the haplotype matrices a reported match's
	// AIdx/BIdx index into, used only when Check is true.
	CheckHapsA, CheckHapsB [][]uint8
	// N is the number of sites the CheckHaps matrices span, used only
	// when Check is true.
	N int
	// Stats records that a match-length histogram was requested. The
	// matchers in this package do not read it; cmd/pbwt-match acts on its
	// -stats flag by passing Histogram.Reporter() as the Reporter.
	Stats bool
}

// Validate checks the configuration error kinds described in spec.md §7.
func (c Config) Validate() error {
	if c.L < 0 {
		return configErrorf("L must be >= 0, got %d", c.L)
	}
	if c.NSparse < 1 {
		return configErrorf("nSparse must be >= 1, got %d", c.NSparse)
	}
	return nil
}

// checkMatchMaximal verifies that haplotype[a][start:end] ==
// haplotype[b][start:end] and that the match cannot be extended on
// either side. It returns an *invariant violation* error, never panics,
// so that callers can decide whether to abort immediately.
func checkMatchMaximal(a, b []uint8, start, end, n int) error {
	if start > 0 && a[start-1] == b[start-1] {
		return invariantErrorf("match (%d,%d) not maximal: extends backwards from %d", start, end, start)
	}
	if end < n && a[end] == b[end] {
		return invariantErrorf("match (%d,%d) not maximal: extends forwards from %d", start, end, end)
	}
	for i := start; i < end; i++ {
		if a[i] != b[i] {
			return invariantErrorf("match (%d,%d) not a match at site %d", start, end, i)
		}
	}
	return nil
}

// WithCheck wraps a Reporter so that, when cfg.Check is set, every
// reported match is verified with checkMatchMaximal before being passed
// through. The wrapped reporter is unaffected when cfg.Check is false.
func WithCheck(cfg Config, report Reporter) Reporter {
	if !cfg.Check {
		return report
	}
	return func(aIdx, bIdx, start, end int) error {
		if err := checkMatchMaximal(cfg.CheckHapsA[aIdx], cfg.CheckHapsB[bIdx], start, end, cfg.N); err != nil {
			return err
		}
		return report(aIdx, bIdx, start, end)
	}
}

// NewTextReporter returns a Reporter that writes matches to w in the
// default wire format of spec.md §6:
//
//	MATCH\t{ai}\t{bi}\t{start}\t{end}\t{end-start}\n
//
// Matches with start == end (empty) are silently dropped, matching the
// original reportMatch's early return.
func NewTextReporter(w io.Writer) Reporter {
	bw := bufio.NewWriter(w)
	return func(aIdx, bIdx, start, end int) error {
		if start == end {
			return nil
		}
		_, err := fmt.Fprintf(bw, "MATCH\t%d\t%d\t%d\t%d\t%d\n", aIdx, bIdx, start, end, end-start)
		if err != nil {
			return err
		}
		return bw.Flush()
	}
}

// NewSparseTextReporter is NewTextReporter's sparse-aware counterpart; it
// appends a trailing column carrying isSparse.
func NewSparseTextReporter(w io.Writer) SparseReporter {
	bw := bufio.NewWriter(w)
	return func(aIdx, bIdx, start, end int, isSparse bool) error {
		if start == end {
			return nil
		}
		_, err := fmt.Fprintf(bw, "MATCH\t%d\t%d\t%d\t%d\t%d\t%v\n", aIdx, bIdx, start, end, end-start, isSparse)
		if err != nil {
			return err
		}
		return bw.Flush()
	}
}
