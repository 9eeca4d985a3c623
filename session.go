package hashsession

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// Session accumulates input into a single Primitive, and extracts output from it.
//
// A Session owns its Primitive.  Dispose must be called when the Session is no longer needed;
// Digest and Reader call it unless WithoutDispose is given.
// A Session is not safe for concurrent use, separate Sessions are independent.
type Session struct {
	algo Algorithm
	prim Primitive
	log  logrus.FieldLogger
}

// NewSession wraps prim in a Session.  The Session takes ownership of prim.
func NewSession(prim Primitive, opts ...SessionOption) *Session {
	s := &Session{
		algo: prim.Algorithm(),
		prim: prim,
		log:  Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("algo", s.algo)
	runtime.SetFinalizer(s, (*Session).finalize)
	return s
}

// New creates a Session for algo using a Primitive from b.
func New(b Backend, algo Algorithm, opts ...SessionOption) (*Session, error) {
	return newSession(b, Params{Algorithm: algo, Mode: ModeHash}, opts)
}

// NewKeyed creates a BLAKE3 Session seeded with key.
// key must be KeySize bytes long.
func NewKeyed(b Backend, key []byte, opts ...SessionOption) (*Session, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength{Length: len(key)}
	}
	var k [KeySize]byte
	copy(k[:], key)
	return newSession(b, Params{Algorithm: BLAKE3, Mode: ModeKeyed, Key: &k}, opts)
}

// NewDeriveKey creates a BLAKE3 Session which derives key material from its input,
// bound to context.
// Readers of the Session are bounded by the backend's Limit, which is 2^63-1 for zeeboblake3,
// the only derive key backend in multibackend.Default.
func NewDeriveKey(b Backend, context string, opts ...SessionOption) (*Session, error) {
	return newSession(b, Params{Algorithm: BLAKE3, Mode: ModeDeriveKey, Context: context}, opts)
}

func newSession(b Backend, params Params, opts []SessionOption) (*Session, error) {
	if !params.Algorithm.Valid() {
		return nil, params.Unsupported()
	}
	prim, err := b.NewPrimitive(params)
	if err != nil {
		return nil, err
	}
	return NewSession(prim, opts...), nil
}

// Algorithm returns the algorithm the Session computes.
func (s *Session) Algorithm() Algorithm {
	return s.algo
}

// Disposed returns true once the Session's Primitive has been released.
func (s *Session) Disposed() bool {
	return s.prim == nil
}

// Update absorbs data.
func (s *Session) Update(data []byte) error {
	if s.prim == nil {
		return s.disposedErr("update")
	}
	s.prim.Update(data)
	return nil
}

// Write implements io.Writer
func (s *Session) Write(p []byte) (int, error) {
	if err := s.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Digest returns output of the hash of all input so far.
// The length is Algorithm.Size() unless WithLength is given and the algorithm is Extendable.
func (s *Session) Digest(opts ...ExtractOption) ([]byte, error) {
	if s.prim == nil {
		return nil, s.disposedErr("digest")
	}
	p := collectExtractParams(s.algo, opts)
	if !s.algo.Extendable() && p.length != s.algo.Size() {
		s.log.Debugf("%v has a fixed output length, ignoring length=%d", s.algo, p.length)
		p.length = s.algo.Size()
	}
	out := make([]byte, p.length)
	s.prim.Digest(out)
	if p.dispose {
		s.Dispose()
	}
	return out, nil
}

// Reader returns an OutputReader over the output of the hash of all input so far.
// The OutputReader remains valid after the Session is disposed.
func (s *Session) Reader(opts ...ExtractOption) (*OutputReader, error) {
	if s.prim == nil {
		return nil, s.disposedErr("reader")
	}
	p := collectExtractParams(s.algo, opts)
	r := newOutputReader(s.algo, s.prim.Reader(), s.log)
	if p.dispose {
		s.Dispose()
	}
	return r, nil
}

// Dispose releases the Primitive.  It is safe to call more than once.
func (s *Session) Dispose() {
	if s.prim == nil {
		return
	}
	s.prim.Free()
	s.prim = nil
	runtime.SetFinalizer(s, nil)
	s.log.Debug("session disposed")
}

// Close implements io.Closer.  It calls Dispose and always returns nil.
func (s *Session) Close() error {
	s.Dispose()
	return nil
}

func (s *Session) disposedErr(op string) error {
	return ErrUseAfterDispose{Op: op, Algorithm: s.algo}
}

func (s *Session) finalize() {
	if s.prim == nil {
		return
	}
	s.log.Warn("session was garbage collected without calling Dispose")
	s.prim.Free()
	s.prim = nil
}
