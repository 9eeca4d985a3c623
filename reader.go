package hashsession

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	_ io.ReadSeekCloser = &OutputReader{}
	_ io.ReaderAt       = &OutputReader{}
)

// OutputReader reads the output of a finalized hash at arbitrary offsets.
//
// For Extendable algorithms the output is effectively unbounded, for the others it is the
// fixed width digest.  Reading k bytes at p and then k' bytes at p+k produces the same bytes as
// reading k+k' bytes at p.
// An OutputReader is not safe for concurrent use.
type OutputReader struct {
	algo  Algorithm
	cur   Cursor
	pos   uint64
	limit uint64
	log   logrus.FieldLogger
}

func newOutputReader(algo Algorithm, cur Cursor, log logrus.FieldLogger) *OutputReader {
	return &OutputReader{
		algo:  algo,
		cur:   cur,
		limit: cur.Limit(),
		log:   log,
	}
}

// NewOutputReader creates an OutputReader which takes ownership of cur.
func NewOutputReader(algo Algorithm, cur Cursor) *OutputReader {
	return newOutputReader(algo, cur, Logger.WithField("algo", algo))
}

// Algorithm returns the algorithm which produced the output.
func (r *OutputReader) Algorithm() Algorithm {
	return r.algo
}

// Limit is the exclusive end of the readable output.
func (r *OutputReader) Limit() uint64 {
	return r.limit
}

// Position returns the offset of the next byte to be read.
func (r *OutputReader) Position() uint64 {
	return r.pos
}

// SetPosition moves the reader to off, which must be <= Limit().
func (r *OutputReader) SetPosition(off uint64) error {
	if r.cur == nil {
		return r.disposedErr("set_position")
	}
	if off > r.limit {
		return ErrOutOfRange{Position: off, Limit: r.limit}
	}
	r.cur.SetPosition(off)
	r.pos = off
	return nil
}

// ReadInto fills all of dst with output starting at Position(), then advances Position().
// If that would read past Limit(), nothing is read and ErrOutOfRange is returned.
func (r *OutputReader) ReadInto(dst []byte) error {
	if r.cur == nil {
		return r.disposedErr("read_into")
	}
	n := uint64(len(dst))
	if n > r.limit-r.pos {
		return ErrOutOfRange{Position: r.pos, Length: n, Limit: r.limit}
	}
	r.cur.Fill(dst)
	r.pos += n
	return nil
}

// ReadN returns the next n bytes of output.
func (r *OutputReader) ReadN(n int) ([]byte, error) {
	if r.cur == nil {
		return nil, r.disposedErr("read")
	}
	if n < 0 || uint64(n) > r.limit-r.pos {
		return nil, ErrOutOfRange{Position: r.pos, Length: uint64(n), Limit: r.limit}
	}
	out := make([]byte, n)
	if err := r.ReadInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Read implements io.Reader.
// It returns io.EOF once Position() reaches Limit().
func (r *OutputReader) Read(p []byte) (int, error) {
	if r.cur == nil {
		return 0, r.disposedErr("read")
	}
	if len(p) == 0 {
		return 0, nil
	}
	rem := r.limit - r.pos
	if rem == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > rem {
		p = p[:rem]
	}
	r.cur.Fill(p)
	r.pos += uint64(len(p))
	return len(p), nil
}

// ReadAt implements io.ReaderAt.  It does not change Position().
func (r *OutputReader) ReadAt(p []byte, off int64) (int, error) {
	if r.cur == nil {
		return 0, r.disposedErr("read_at")
	}
	if off < 0 || uint64(off) > r.limit {
		return 0, ErrOutOfRange{Position: uint64(off), Length: uint64(len(p)), Limit: r.limit}
	}
	saved := r.pos
	defer func() {
		r.cur.SetPosition(saved)
		r.pos = saved
	}()
	r.cur.SetPosition(uint64(off))
	r.pos = uint64(off)

	n, err := io.ReadFull(r, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// Seek implements io.Seeker.
// Positions which cannot be represented as an int64 can only be reached with SetPosition.
func (r *OutputReader) Seek(offset int64, whence int) (int64, error) {
	if r.cur == nil {
		return 0, r.disposedErr("seek")
	}
	var base uint64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = r.pos
	case io.SeekEnd:
		base = r.limit
	default:
		return 0, errors.Errorf("hashsession: invalid whence %d", whence)
	}
	target, ok := addOffset(base, offset)
	if !ok {
		return 0, errors.Wrapf(ErrOutOfRange{Position: base, Limit: r.limit}, "seek %d from %d", offset, base)
	}
	if target > r.limit || target > math.MaxInt64 {
		return 0, ErrOutOfRange{Position: target, Limit: r.limit}
	}
	if err := r.SetPosition(target); err != nil {
		return 0, err
	}
	return int64(target), nil
}

// Bytes reads length bytes of output from the start.
// Position() is left at length.
func (r *OutputReader) Bytes(length int) ([]byte, error) {
	if err := r.SetPosition(0); err != nil {
		return nil, err
	}
	return r.ReadN(length)
}

// EncodeToString encodes length bytes of output from the start using enc.
func (r *OutputReader) EncodeToString(enc Encoding, length int) (string, error) {
	data, err := r.Bytes(length)
	if err != nil {
		return "", err
	}
	return enc.EncodeToString(data)
}

// Dispose releases the Cursor.  It is safe to call more than once.
func (r *OutputReader) Dispose() {
	if r.cur == nil {
		return
	}
	r.cur.Free()
	r.cur = nil
	r.log.Debug("reader disposed")
}

// Close implements io.Closer.  It calls Dispose and always returns nil.
func (r *OutputReader) Close() error {
	r.Dispose()
	return nil
}

func (r *OutputReader) disposedErr(op string) error {
	return ErrUseAfterDispose{Op: op, Algorithm: r.algo}
}

// addOffset returns base+delta, or false if the result would leave [0, 2^64).
func addOffset(base uint64, delta int64) (uint64, bool) {
	if delta >= 0 {
		d := uint64(delta)
		if d > math.MaxUint64-base {
			return 0, false
		}
		return base + d, true
	}
	// -(delta+1) does not overflow for math.MinInt64
	d := uint64(-(delta + 1)) + 1
	if d > base {
		return 0, false
	}
	return base - d, true
}
