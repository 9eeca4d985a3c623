package hashsession

import (
	"errors"
	"fmt"
)

// KeySize is the required length of a key for keyed hashing.
const KeySize = 32

// ErrUseAfterDispose is returned by any operation on a Session or OutputReader
// after it has been disposed.  The instance cannot be used again.
type ErrUseAfterDispose struct {
	Op        string
	Algorithm Algorithm
}

func (e ErrUseAfterDispose) Error() string {
	return fmt.Sprintf("hashsession: cannot call %s() on %v after Dispose() has been called", e.Op, e.Algorithm)
}

// ErrOutOfRange is returned when an OutputReader is positioned, or asked to read, outside
// of its addressable domain [0, Limit].
type ErrOutOfRange struct {
	Position uint64
	Length   uint64
	Limit    uint64
}

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("hashsession: output range out of bounds: position=%d length=%d limit=%d", e.Position, e.Length, e.Limit)
}

// ErrInvalidKeyLength is returned when a keyed hash is requested with a key that is not KeySize bytes.
type ErrInvalidKeyLength struct {
	Length int
}

func (e ErrInvalidKeyLength) Error() string {
	return fmt.Sprintf("hashsession: key must be %d bytes, got %d", KeySize, e.Length)
}

// ErrUnsupportedAlgorithm is returned when an algorithm tag is not recognized,
// or when no backend can provide the algorithm in the requested mode.
type ErrUnsupportedAlgorithm struct {
	Tag  string
	Mode Mode
}

func (e ErrUnsupportedAlgorithm) Error() string {
	if e.Mode == ModeHash {
		return fmt.Sprintf("hashsession: unsupported algorithm %q", e.Tag)
	}
	return fmt.Sprintf("hashsession: unsupported algorithm %q in mode %v", e.Tag, e.Mode)
}

func IsErrUseAfterDispose(err error) bool {
	var target ErrUseAfterDispose
	return errors.As(err, &target)
}

func IsErrOutOfRange(err error) bool {
	var target ErrOutOfRange
	return errors.As(err, &target)
}

func IsErrInvalidKeyLength(err error) bool {
	var target ErrInvalidKeyLength
	return errors.As(err, &target)
}

func IsErrUnsupportedAlgorithm(err error) bool {
	var target ErrUnsupportedAlgorithm
	return errors.As(err, &target)
}
