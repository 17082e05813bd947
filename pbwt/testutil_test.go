package pbwt

// testPanel is a minimal in-memory Panel used only by this package's own
// tests, so they don't need to depend on encoding/pbwtio.
type testPanel struct {
	m, n int
	data [][]uint8 // data[k][i]
}

func newTestPanel(haps [][]uint8) *testPanel {
	m := len(haps)
	n := 0
	if m > 0 {
		n = len(haps[0])
	}
	data := make([][]uint8, n)
	for k := 0; k < n; k++ {
		col := make([]uint8, m)
		for i, row := range haps {
			col[i] = row[k]
		}
		data[k] = col
	}
	return &testPanel{m: m, n: n, data: data}
}

func (p *testPanel) NumHaplotypes() int { return p.m }
func (p *testPanel) NumSites() int      { return p.n }

func (p *testPanel) NewCursor() (*Cursor, error) { return NewCursor(p) }

func (p *testPanel) Column(k int, order []int, out []uint8) error {
	col := p.data[k]
	for i, h := range order {
		out[i] = col[h]
	}
	return nil
}

func (p *testPanel) Haplotypes() ([][]uint8, error) {
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

// randomHaplotypes returns an m x n matrix of pseudo-random 0/1 symbols,
// generated from a simple linear congruential generator so tests stay
// deterministic without needing math/rand's global state.
func randomHaplotypes(m, n int, seed uint64) [][]uint8 {
	state := seed | 1
	next := func() uint64 {
		state = state*6364136223846793005 + 1442695040888963407
		return state
	}
	haps := make([][]uint8, m)
	for i := range haps {
		row := make([]uint8, n)
		for k := range row {
			row[k] = uint8(next() >> 63)
		}
		haps[i] = row
	}
	return haps
}
