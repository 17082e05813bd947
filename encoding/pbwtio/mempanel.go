package pbwtio

import (
	"fmt"

	"github.com/grailbio/pbwt/pbwt"
)

// MemPanel is a fully in-memory pbwt.Panel: one symbol column (indexed
// by the original haplotype order, not any PBWT permutation) per site.
type MemPanel struct {
	m, n int
	data [][]uint8 // data[k][i], k in [0,n), i in [0,m)
}

var _ pbwt.Panel = (*MemPanel)(nil)

// NewMemPanelFromHaplotypes builds a MemPanel from a row-major haplotype
// matrix, haps[i][k] being haplotype i's symbol at site k. All rows must
// have equal length.
func NewMemPanelFromHaplotypes(haps [][]uint8) (*MemPanel, error) {
	m := len(haps)
	n := 0
	if m > 0 {
		n = len(haps[0])
	}
	data := make([][]uint8, n)
	for k := 0; k < n; k++ {
		col := make([]uint8, m)
		for i, row := range haps {
			if len(row) != n {
				return nil, errShapeMismatch(i, len(row), n)
			}
			col[i] = row[k]
		}
		data[k] = col
	}
	return &MemPanel{m: m, n: n, data: data}, nil
}

func errShapeMismatch(row, got, want int) error {
	return fmt.Errorf("haplotype %d has %d sites, want %d", row, got, want)
}

func (p *MemPanel) NumHaplotypes() int { return p.m }
func (p *MemPanel) NumSites() int      { return p.n }

func (p *MemPanel) NewCursor() (*pbwt.Cursor, error) { return pbwt.NewCursor(p) }

func (p *MemPanel) Column(k int, order []int, out []uint8) error {
	if k < 0 || k >= p.n {
		return fmt.Errorf("site %d out of range [0,%d)", k, p.n)
	}
	col := p.data[k]
	for i, hapIdx := range order {
		out[i] = col[hapIdx]
	}
	return nil
}

func (p *MemPanel) Haplotypes() ([][]uint8, error) {
	rows := make([][]uint8, p.m)
	for i := range rows {
		rows[i] = make([]uint8, p.n)
	}
	for k, col := range p.data {
		for i, v := range col {
			rows[i][k] = v
		}
	}
	return rows, nil
}

// Select returns a new MemPanel restricted to the given site indices, in
// the order given.
func (p *MemPanel) Select(sites []int) (*MemPanel, error) {
	data := make([][]uint8, len(sites))
	for j, k := range sites {
		if k < 0 || k >= p.n {
			return nil, fmt.Errorf("site %d out of range [0,%d)", k, p.n)
		}
		data[j] = append([]uint8(nil), p.data[k]...)
	}
	return &MemPanel{m: p.m, n: len(sites), data: data}, nil
}
