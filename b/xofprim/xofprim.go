// package xofprim turns any xof.Scheme into hash primitives.
//
// The schemes in crypto/xof are sequential, so a Cursor seeks backwards by restarting from a
// snapshot of the finalized state, and forwards by discarding output.  Input is never re-absorbed.
package xofprim

import (
	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/crypto/xof"
	"github.com/brendoncarroll/go-hashsession/crypto/xof/xof_sha3"
)

// DefaultLimit bounds the output space of a Cursor, since seeking costs time linear in the distance.
const DefaultLimit = 1 << 32

type Option func(b *config)

type config struct {
	limit uint64
}

// WithLimit sets the exclusive end of the output space addressable by Cursors.
func WithLimit(n uint64) Option {
	return func(c *config) {
		c.limit = n
	}
}

var _ hashsession.Backend = Backend[struct{}]{}

// Backend provides a single Extendable algorithm implemented by Scheme.
type Backend[S any] struct {
	algo   hashsession.Algorithm
	scheme xof.Scheme[S]
	limit  uint64
}

func New[S any](algo hashsession.Algorithm, sch xof.Scheme[S], opts ...Option) Backend[S] {
	if !algo.Extendable() {
		panic(algo)
	}
	c := config{limit: DefaultLimit}
	for _, opt := range opts {
		opt(&c)
	}
	return Backend[S]{algo: algo, scheme: sch, limit: c.limit}
}

// NewSHAKE256 returns a Backend providing SHAKE256
func NewSHAKE256(opts ...Option) Backend[xof_sha3.SHAKE256State] {
	return New[xof_sha3.SHAKE256State](hashsession.SHAKE256, xof_sha3.SHAKE256{}, opts...)
}

func (b Backend[S]) NewPrimitive(p hashsession.Params) (hashsession.Primitive, error) {
	if b.scheme == nil || p.Algorithm != b.algo || p.Mode != hashsession.ModeHash {
		return nil, p.Unsupported()
	}
	return &Primitive[S]{
		algo:   b.algo,
		scheme: b.scheme,
		state:  b.scheme.New(),
		limit:  b.limit,
	}, nil
}

type Primitive[S any] struct {
	algo   hashsession.Algorithm
	scheme xof.Scheme[S]
	state  S
	limit  uint64
}

func (p *Primitive[S]) Algorithm() hashsession.Algorithm {
	return p.algo
}

func (p *Primitive[S]) Update(data []byte) {
	p.scheme.Absorb(&p.state, data)
}

func (p *Primitive[S]) Digest(dst []byte) {
	xof.Peek(p.scheme, &p.state, dst)
}

func (p *Primitive[S]) Reader() hashsession.Cursor {
	c := &Cursor[S]{scheme: p.scheme, limit: p.limit}
	p.scheme.Clone(&c.base, &p.state)
	p.scheme.Clone(&c.cur, &c.base)
	return c
}

func (p *Primitive[S]) Free() {
	var zero S
	p.state = zero
}

type Cursor[S any] struct {
	scheme xof.Scheme[S]
	// base is never expanded, it is the state at offset 0
	base  S
	cur   S
	off   uint64
	limit uint64
}

func (c *Cursor[S]) Fill(dst []byte) {
	c.scheme.Expand(&c.cur, dst)
	c.off += uint64(len(dst))
}

func (c *Cursor[S]) SetPosition(off uint64) {
	if off < c.off {
		c.scheme.Clone(&c.cur, &c.base)
		c.off = 0
	}
	xof.Discard(c.scheme, &c.cur, off-c.off)
	c.off = off
}

func (c *Cursor[S]) Limit() uint64 {
	return c.limit
}

func (c *Cursor[S]) Free() {
	var zero S
	c.base, c.cur = zero, zero
}
