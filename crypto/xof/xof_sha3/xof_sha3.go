// package xof_sha3 implements xof.Scheme using SHAKE256 from golang.org/x/crypto/sha3
package xof_sha3

import (
	"golang.org/x/crypto/sha3"

	"github.com/brendoncarroll/go-hashsession/crypto/xof"
)

// SHAKE256State holds a SHAKE256 sponge.  The zero value is not usable, states come from New or Clone.
type SHAKE256State struct {
	h sha3.ShakeHash
}

var _ xof.Scheme[SHAKE256State] = SHAKE256{}

type SHAKE256 struct{}

func (SHAKE256) New() SHAKE256State {
	return SHAKE256State{h: sha3.NewShake256()}
}

func (SHAKE256) Absorb(x *SHAKE256State, in []byte) {
	if _, err := x.h.Write(in); err != nil {
		panic(err)
	}
}

func (SHAKE256) Expand(x *SHAKE256State, out []byte) {
	if _, err := x.h.Read(out); err != nil {
		panic(err)
	}
}

func (SHAKE256) Reset(x *SHAKE256State) {
	x.h.Reset()
}

func (SHAKE256) Clone(dst, src *SHAKE256State) {
	dst.h = src.h.Clone()
}
