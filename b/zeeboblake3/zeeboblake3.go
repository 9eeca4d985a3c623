// package zeeboblake3 provides BLAKE3 primitives backed by github.com/zeebo/blake3.
//
// All three BLAKE3 modes are supported.  The output space is limited to what an int64 Seek can reach.
package zeeboblake3

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

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
	var h *blake3.Hasher
	switch p.Mode {
	case hashsession.ModeHash:
		h = blake3.New()
	case hashsession.ModeKeyed:
		var err error
		if h, err = blake3.NewKeyed(p.Key[:]); err != nil {
			return nil, errors.Wrap(err, "zeeboblake3")
		}
	case hashsession.ModeDeriveKey:
		h = blake3.NewDeriveKey(p.Context)
	default:
		return nil, p.Unsupported()
	}
	return &Primitive{h: h}, nil
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
	if _, err := io.ReadFull(p.h.Digest(), dst); err != nil {
		panic(err)
	}
}

func (p *Primitive) Reader() hashsession.Cursor {
	return &Cursor{d: p.h.Digest()}
}

func (p *Primitive) Free() {
	p.h = nil
}

type Cursor struct {
	d *blake3.Digest
}

func (c *Cursor) Fill(dst []byte) {
	if _, err := io.ReadFull(c.d, dst); err != nil {
		panic(err)
	}
}

func (c *Cursor) SetPosition(off uint64) {
	if off > math.MaxInt64 {
		panic(off)
	}
	if _, err := c.d.Seek(int64(off), io.SeekStart); err != nil {
		panic(err)
	}
}

func (c *Cursor) Limit() uint64 {
	return math.MaxInt64
}

func (c *Cursor) Free() {
	c.d = nil
}
