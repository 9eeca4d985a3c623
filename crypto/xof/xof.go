// package xof provides an interface for eXtendable Output Functions (XOF).
package xof

type Scheme[State any] interface {
	// New creates a new instance of the XOF
	New() State
	// Absorb appends data to the input of the XOF by modifying s
	Absorb(s *State, data []byte)
	// Expand reads out data from the XOF, and evolves s as needed to account for the read bytes.
	// Once Expand has been called, s must not be passed to Absorb.
	Expand(s *State, data []byte)
	// Reset sets s to it's initial state.
	Reset(s *State)
	// Clone sets dst to an independent copy of src.
	Clone(dst, src *State)
}

// Sum creates a new XOF state from sch, absorbs the input and expands output into dst.
func Sum[S any](sch Scheme[S], dst []byte, in []byte) {
	x := sch.New()
	sch.Absorb(&x, in)
	sch.Expand(&x, dst)
}

// Sum256 is a convenience function for reading 256 bits of output from an XOF.
func Sum256[S any](sch Scheme[S], in []byte) (ret [32]byte) {
	Sum(sch, ret[:], in)
	return ret
}

// Sum512 is a convenience function for reading 512 bits of output from an XOF.
func Sum512[S any](sch Scheme[S], in []byte) (ret [64]byte) {
	Sum(sch, ret[:], in)
	return ret
}

// Peek expands output into dst from a copy of s, leaving s able to Absorb more input.
func Peek[S any](sch Scheme[S], s *S, dst []byte) {
	var x S
	sch.Clone(&x, s)
	sch.Expand(&x, dst)
}

// Discard expands and throws away n bytes of output from s.
func Discard[S any](sch Scheme[S], s *S, n uint64) {
	var buf [512]byte
	for n > 0 {
		k := uint64(len(buf))
		if n < k {
			k = n
		}
		sch.Expand(s, buf[:k])
		n -= k
	}
}

type Writer[S any] struct {
	Scheme Scheme[S]
	State  *S
}

func (w *Writer[S]) Write(p []byte) (int, error) {
	w.Scheme.Absorb(w.State, p)
	return len(p), nil
}

type Reader[S any] struct {
	Scheme Scheme[S]
	State  *S
}

func (r *Reader[S]) Read(p []byte) (int, error) {
	r.Scheme.Expand(r.State, p)
	return len(p), nil
}
