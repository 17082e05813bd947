package pbwt

import (
	"encoding/binary"
	"hash"

	"github.com/biogo/store/llrb"
	"github.com/blainsmith/seahash"
)

// lengthBucket is one node of a Histogram's llrb.Tree: the count of
// matches whose length equals Length.
type lengthBucket struct {
	Length int
	Count  int64
}

// Compare implements llrb.Comparable, ordering buckets by Length.
func (b lengthBucket) Compare(c llrb.Comparable) int {
	return b.Length - c.(lengthBucket).Length
}

// Histogram accumulates a match-length histogram in an llrb.Tree rather
// than a map, so that Do can walk buckets in increasing length order
// without a separate sort (spec.md §6, -stats; matchMaximalWithin's
// isStats branch in the original, which used a plain array indexed by
// length — the ordered tree generalizes that to lengths unbounded by a
// preallocated array size).
type Histogram struct {
	tree llrb.Tree
}

// NewHistogram returns an empty match-length histogram.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// Add records one match of the given length.
func (h *Histogram) Add(length int) {
	key := lengthBucket{Length: length}
	if existing := h.tree.Get(key); existing != nil {
		b := existing.(lengthBucket)
		b.Count++
		h.tree.Insert(b)
		return
	}
	h.tree.Insert(lengthBucket{Length: length, Count: 1})
}

// Reporter returns a Reporter that feeds Add with each match's length
// instead of forwarding the match anywhere; use it in place of a
// text/check reporter when cfg.Stats is set.
func (h *Histogram) Reporter() Reporter {
	return func(aIdx, bIdx, start, end int) error {
		h.Add(end - start)
		return nil
	}
}

// Do calls f once per distinct length, in increasing order, until f
// returns false.
func (h *Histogram) Do(f func(length int, count int64) bool) {
	h.tree.Do(func(c llrb.Comparable) bool {
		b := c.(lengthBucket)
		return f(b.Length, b.Count)
	})
}

// ChecksumMatches returns an order-independent checksum of a set of
// matches, computed by seahash-ing each match's encoded fields and
// summing the results (mod 2^64). Two matchers that disagree only in the
// order matches were reported in, but agree on the matches themselves,
// produce the same checksum — the cross-variant equivalence check of
// spec.md §8. Grounded on the commutative per-record checksum pattern of
// bio-pamtool's fileChecksum (cmd/bio-pamtool/checksum.go), adapted from
// a streaming accumulator to a static slice of already-collected matches.
func ChecksumMatches(matches []Match) uint64 {
	h := seahash.New()
	var sum uint64
	buf := [16]byte{}
	for _, m := range matches {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(m.AIdx))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(m.BIdx))
		binary.LittleEndian.PutUint32(buf[8:12], uint32(m.Start))
		binary.LittleEndian.PutUint32(buf[12:16], uint32(m.End))
		sum += hashMatch(h, buf)
	}
	return sum
}

func hashMatch(h hash.Hash64, buf [16]byte) uint64 {
	h.Reset()
	h.Write(buf[:])
	return h.Sum64()
}
