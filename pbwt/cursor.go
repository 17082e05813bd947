package pbwt

// Cursor is the PBWT state at a single site: the permutation a, the
// divergence array d, the symbol column y (permuted by a), and, once
// CalculateU has been called, the zero-count prefix sum u and the zero
// count c.
//
// A Cursor is created at site 0 and walked forward one site at a time with
// Advance. It is not safe for concurrent use.
type Cursor struct {
	panel Panel
	m     int // M, number of haplotypes
	n     int // N, number of sites
	k     int // current site, 0 <= k <= n

	A []int   // permutation, len M
	D []int   // divergence, len M+1
	Y []uint8 // symbol column at site k, permuted by A; valid only if k < n
	U []int   // prefix sum of zeros, len M+1; valid only after CalculateU
	C int     // count of zeros in Y; valid only if k < n
}

// Site returns the cursor's current site index.
func (c *Cursor) Site() int { return c.k }

// M returns the number of haplotypes.
func (c *Cursor) M() int { return c.m }

// NewCursor builds a cursor at site 0 over p: a[i] = i, d[i] = 0 except
// for the sentinels d[0] = d[M] = 1 (= k+1 at k=0). Panel implementations'
// NewCursor method should simply call this.
func NewCursor(p Panel) (*Cursor, error) {
	m, n := p.NumHaplotypes(), p.NumSites()
	c := &Cursor{
		panel: p,
		m:     m,
		n:     n,
		k:     0,
		A:     make([]int, m),
		D:     make([]int, m+1),
		Y:     make([]uint8, m),
	}
	for i := range c.A {
		c.A[i] = i
	}
	c.D[0] = 1
	c.D[m] = 1
	if n > 0 {
		if err := p.Column(0, c.A, c.Y); err != nil {
			return nil, err
		}
		c.C = countZeros(c.Y)
	}
	return c, nil
}

func countZeros(y []uint8) int {
	n := 0
	for _, v := range y {
		if v == 0 {
			n++
		}
	}
	return n
}

// CalculateU computes the prefix sum of zero-symbols in Y: U[i] =
// #{j < i : Y[j] == 0}, for i in [0, M], with U[M] == C.
func (c *Cursor) CalculateU() {
	if cap(c.U) < c.m+1 {
		c.U = make([]int, c.m+1)
	} else {
		c.U = c.U[:c.m+1]
	}
	n := 0
	for i := 0; i < c.m; i++ {
		c.U[i] = n
		if c.Y[i] == 0 {
			n++
		}
	}
	c.U[c.m] = n
}

// Map returns the rank, at the next site, of the row currently at rank i
// once it reads symbol s at the current site. CalculateU must have been
// called since the last Advance.
func (c *Cursor) Map(s uint8, i int) int {
	if s == 0 {
		return c.U[i]
	}
	return c.C + (i - c.U[i])
}

// partitionByY computes the stable partition of A by Y (zeros then ones)
// and the associated divergence array, as if the cursor were currently
// positioned at site k (so the new sentinel is k+2). It does not mutate
// the cursor or read any new symbol column.
func (c *Cursor) partitionByY(k int) (newA, newD []int) {
	m := c.m
	newA = make([]int, m)
	newD = make([]int, m+1)
	ones := make([]int, 0, m)
	onesD := make([]int, 0, m)

	u := 0
	p, q := k+1, k+1
	for i := 0; i < m; i++ {
		if c.D[i] > p {
			p = c.D[i]
		}
		if c.D[i] > q {
			q = c.D[i]
		}
		if c.Y[i] == 0 {
			newA[u] = c.A[i]
			newD[u] = p
			p = 0
			u++
		} else {
			ones = append(ones, c.A[i])
			onesD = append(onesD, q)
			q = 0
		}
	}
	copy(newA[u:], ones)
	copy(newD[u:], onesD)
	newD[0] = k + 2
	newD[m] = k + 2
	return newA, newD
}

// Advance moves the cursor from site k to site k+1, using the
// already-populated Y and D at site k (Algorithm 2 of Durbin 2014): the
// new A is the stable partition of A by Y (zeros then ones), and the new D
// is computed by propagating running maxima of D within each of the two
// streams, with the sentinel k+2 at both ends. The new Y is then read
// from the backing panel.
//
// It is a structural error to call Advance once the cursor is already at
// site N.
func (c *Cursor) Advance() error {
	if c.k >= c.n {
		return structuralErrorf("cursor advance past site %d (N=%d)", c.k, c.n)
	}
	newA, newD := c.partitionByY(c.k)
	c.A, c.D = newA, newD
	c.k++
	if c.k < c.n {
		if err := c.panel.Column(c.k, c.A, c.Y); err != nil {
			return err
		}
		c.C = countZeros(c.Y)
	} else {
		c.C = 0
	}
	return nil
}

// AdvanceInPlace performs the same A/D update as Advance, using site index
// k for the sentinel value, but does not read a new Y column from a
// backing panel: it leaves Y untouched, and the caller is responsible for
// populating Y (and, if needed, C) for the new site before the cursor is
// used again. This is used by naked cursors (see NewNakedCursor) whose
// symbol columns are supplied externally, such as the sparse sweep's
// sub-panel cursors.
func (c *Cursor) AdvanceInPlace(k int) {
	newA, newD := c.partitionByY(k)
	c.A, c.D = newA, newD
	c.k = k + 1
}

// NewNakedCursor returns a cursor over m rows that is not backed by any
// Panel: a[i] = i, d sentinels set for site 0, and Y left zeroed. Callers
// must populate Y and C themselves (CalculateU does not set C) before
// reading from it, and must advance it with AdvanceInPlace rather than
// Advance.
func NewNakedCursor(m int) *Cursor {
	c := &Cursor{
		m: m,
		n: -1, // no panel backs this cursor; Advance() must never be called.
		k: 0,
		A: make([]int, m),
		D: make([]int, m+1),
		Y: make([]uint8, m),
	}
	for i := range c.A {
		c.A[i] = i
	}
	c.D[0] = 1
	c.D[m] = 1
	return c
}

// Clone returns a deep copy of the cursor, independent of the original.
func (c *Cursor) Clone() *Cursor {
	cp := &Cursor{
		panel: c.panel,
		m:     c.m,
		n:     c.n,
		k:     c.k,
		A:     append([]int(nil), c.A...),
		D:     append([]int(nil), c.D...),
		Y:     append([]uint8(nil), c.Y...),
		C:     c.C,
	}
	if c.U != nil {
		cp.U = append([]int(nil), c.U...)
	}
	return cp
}
