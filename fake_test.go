package hashsession

// fakePrimitive produces output byte i as byte(i) ^ byte(len(input)).
type fakePrimitive struct {
	algo  Algorithm
	input []byte
	limit uint64
	frees int
}

func newFake(algo Algorithm) *fakePrimitive {
	limit := uint64(1 << 20)
	if !algo.Extendable() {
		limit = uint64(algo.Size())
	}
	return &fakePrimitive{algo: algo, limit: limit}
}

func (p *fakePrimitive) Algorithm() Algorithm { return p.algo }

func (p *fakePrimitive) Update(data []byte) {
	p.input = append(p.input, data...)
}

func (p *fakePrimitive) Digest(dst []byte) {
	c := p.Reader()
	c.Fill(dst)
}

func (p *fakePrimitive) Reader() Cursor {
	return &fakeCursor{seed: byte(len(p.input)), limit: p.limit}
}

func (p *fakePrimitive) Free() {
	p.frees++
}

type fakeCursor struct {
	seed  byte
	off   uint64
	limit uint64
	freed bool
}

func (c *fakeCursor) Fill(dst []byte) {
	for i := range dst {
		dst[i] = byte(c.off) ^ c.seed
		c.off++
	}
}

func (c *fakeCursor) SetPosition(off uint64) { c.off = off }

func (c *fakeCursor) Limit() uint64 { return c.limit }

func (c *fakeCursor) Free() { c.freed = true }
