// package stdhash provides fixed width hash primitives built on hash.Hash.
//
// SHA2 is SHA-256, BLAKE2b is BLAKE2b-256.  Cursors range over the digest only.
package stdhash

import (
	"crypto/md5"
	"crypto/sha256"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/brendoncarroll/go-hashsession"
)

var _ hashsession.Backend = Backend{}

type Backend struct{}

func New() Backend {
	return Backend{}
}

func (Backend) NewPrimitive(p hashsession.Params) (hashsession.Primitive, error) {
	if p.Mode != hashsession.ModeHash {
		return nil, p.Unsupported()
	}
	var h hash.Hash
	switch p.Algorithm {
	case hashsession.SHA2:
		h = sha256.New()
	case hashsession.MD5:
		h = md5.New()
	case hashsession.BLAKE2b:
		var err error
		if h, err = blake2b.New256(nil); err != nil {
			return nil, errors.Wrap(err, "stdhash: creating blake2b")
		}
	default:
		return nil, p.Unsupported()
	}
	return NewPrimitive(p.Algorithm, h), nil
}

// NewPrimitive wraps h, which must compute algo.
func NewPrimitive(algo hashsession.Algorithm, h hash.Hash) *Primitive {
	if h.Size() != algo.Size() {
		panic(errors.Errorf("stdhash: %v has size %d, hash has size %d", algo, algo.Size(), h.Size()))
	}
	return &Primitive{algo: algo, h: h}
}

type Primitive struct {
	algo hashsession.Algorithm
	h    hash.Hash
}

func (p *Primitive) Algorithm() hashsession.Algorithm {
	return p.algo
}

func (p *Primitive) Update(data []byte) {
	p.h.Write(data)
}

// Digest copies the digest into dst.  Bytes of dst past the digest size are not written.
func (p *Primitive) Digest(dst []byte) {
	copy(dst, p.h.Sum(nil))
}

func (p *Primitive) Reader() hashsession.Cursor {
	return &Cursor{digest: p.h.Sum(nil)}
}

func (p *Primitive) Free() {
	p.h = nil
}

// Cursor reads from a computed digest
type Cursor struct {
	digest []byte
	off    uint64
}

func (c *Cursor) Fill(dst []byte) {
	n := copy(dst, c.digest[c.off:])
	c.off += uint64(n)
}

func (c *Cursor) SetPosition(off uint64) {
	c.off = off
}

func (c *Cursor) Limit() uint64 {
	return uint64(len(c.digest))
}

func (c *Cursor) Free() {
	c.digest = nil
}
