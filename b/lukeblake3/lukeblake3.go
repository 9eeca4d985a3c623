// package lukeblake3 provides BLAKE3 primitives backed by lukechampine.com/blake3.
//
// Cursors address the full 64 bit output space.  Derived keys are not supported, see zeeboblake3.
package lukeblake3

import (
	"io"
	"math"

	"lukechampine.com/blake3"

	"github.com/brendoncarroll/go-hashsession"
)

var _ hashsession.Backend = Backend{}

type Backend struct{}

func New() Backend {
	return Backend{}
}

func (Backend) NewPrimitive(p hashsession.Params) (hashsession.Primitive, error) {
	if p.Algorithm != hashsession.BLAKE3 {
		return nil, p.Unsupported()
	}
	switch p.Mode {
	case hashsession.ModeHash:
		return &Primitive{h: blake3.New(hashsession.DefaultLength, nil)}, nil
	case hashsession.ModeKeyed:
		return &Primitive{h: blake3.New(hashsession.DefaultLength, p.Key[:])}, nil
	default:
		return nil, p.Unsupported()
	}
}

type Primitive struct {
	h *blake3.Hasher
}

func (*Primitive) Algorithm() hashsession.Algorithm {
	return hashsession.BLAKE3
}

func (p *Primitive) Update(data []byte) {
	p.h.Write(data)
}

func (p *Primitive) Digest(dst []byte) {
	readFull(p.h.XOF(), dst)
}

func (p *Primitive) Reader() hashsession.Cursor {
	return &Cursor{or: p.h.XOF()}
}

func (p *Primitive) Free() {
	p.h = nil
}

type Cursor struct {
	or *blake3.OutputReader
}

func (c *Cursor) Fill(dst []byte) {
	readFull(c.or, dst)
}

// window is a multiple of the library's output buffer (MaxSIMD blocks of 64 bytes) for every SIMD width.
// OutputReader.Seek only produces correct output at multiples of it.
const window = 16 * 64

// SetPosition seeks the output reader to the window containing off, then reads up to off.
// io.Seeker only takes int64 offsets, so the upper half of the space is reached relative to the current offset.
func (c *Cursor) SetPosition(off uint64) {
	base := off &^ (window - 1)
	if base <= math.MaxInt64 {
		mustSeek(c.or, int64(base), io.SeekStart)
	} else {
		// base-MaxInt64 < 2^63, so a single relative step suffices
		mustSeek(c.or, math.MaxInt64, io.SeekStart)
		mustSeek(c.or, int64(base-math.MaxInt64), io.SeekCurrent)
	}
	var skip [window]byte
	readFull(c.or, skip[:off-base])
}

// Limit is the last offset representable as a uint64.
func (c *Cursor) Limit() uint64 {
	return math.MaxUint64
}

func (c *Cursor) Free() {
	c.or = nil
}

func readFull(r io.Reader, dst []byte) {
	if _, err := io.ReadFull(r, dst); err != nil {
		panic(err)
	}
}

func mustSeek(s io.Seeker, off int64, whence int) {
	if _, err := s.Seek(off, whence); err != nil {
		panic(err)
	}
}
