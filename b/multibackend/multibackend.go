// package multibackend composes several hashsession.Backends into one.
package multibackend

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pkg/errors"

	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/b/lukeblake3"
	"github.com/brendoncarroll/go-hashsession/b/stdhash"
	"github.com/brendoncarroll/go-hashsession/b/xofprim"
	"github.com/brendoncarroll/go-hashsession/b/zeeboblake3"
)

var log = hashsession.Logger

var _ hashsession.Backend = Backend{}

// Backend asks each of its backends in order, and uses the first one which supports the Params.
type Backend struct {
	backends []hashsession.Backend
}

func New(backends ...hashsession.Backend) Backend {
	return Backend{backends: append([]hashsession.Backend{}, backends...)}
}

func (mb Backend) NewPrimitive(p hashsession.Params) (hashsession.Primitive, error) {
	for _, b := range mb.backends {
		prim, err := b.NewPrimitive(p)
		if hashsession.IsErrUnsupportedAlgorithm(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.WithField("algo", p.Algorithm).Tracef("using backend %T for mode %v", b, p.Mode)
		return prim, nil
	}
	return nil, p.Unsupported()
}

// Default returns a Backend which supports every algorithm and mode.
// BLAKE3 is provided by lukeblake3, except derived keys which come from zeeboblake3.
func Default() Backend {
	return New(
		lukeblake3.New(),
		zeeboblake3.New(),
		stdhash.New(),
		xofprim.NewSHAKE256(),
	)
}

var named = map[string]func() Backend{
	"default": Default,
	"luke": func() Backend {
		return New(lukeblake3.New(), stdhash.New(), xofprim.NewSHAKE256())
	},
	"zeebo": func() Backend {
		return New(zeeboblake3.New(), stdhash.New(), xofprim.NewSHAKE256())
	},
}

// Names returns the names accepted by ByName, sorted.
func Names() []string {
	names := maps.Keys(named)
	slices.Sort(names)
	return names
}

// ByName returns a named composition of backends.
// "luke" and "zeebo" select the BLAKE3 implementation, "default" uses both.
func ByName(name string) (Backend, error) {
	fn, ok := named[name]
	if !ok {
		return Backend{}, errors.Errorf("multibackend: unknown backend %q, must be one of %v", name, Names())
	}
	return fn(), nil
}
