package hashsession

import (
	"io"

	"github.com/pkg/errors"
)

// Hash returns the digest of input using algo from b.
func Hash(b Backend, algo Algorithm, input []byte, opts ...ExtractOption) ([]byte, error) {
	s, err := New(b, algo)
	if err != nil {
		return nil, err
	}
	return digestOnce(s, input, opts)
}

// HashReader returns the digest of everything read from r using algo from b.
func HashReader(b Backend, algo Algorithm, r io.Reader, opts ...ExtractOption) ([]byte, error) {
	s, err := New(b, algo)
	if err != nil {
		return nil, err
	}
	defer s.Dispose()
	if _, err := io.Copy(s, r); err != nil {
		return nil, errors.Wrapf(err, "hashing %v stream", algo)
	}
	return s.Digest(opts...)
}

// KeyedHash returns the BLAKE3 keyed hash of input.  key must be KeySize bytes.
func KeyedHash(b Backend, key []byte, input []byte, opts ...ExtractOption) ([]byte, error) {
	s, err := NewKeyed(b, key)
	if err != nil {
		return nil, err
	}
	return digestOnce(s, input, opts)
}

// DeriveKey derives a subkey from material using the BLAKE3 key derivation function.
// context should be a hardcoded, globally unique, application specific string.
// The output length is bounded by the Limit of the backend's cursor, 2^63-1 bytes for zeeboblake3.
func DeriveKey(b Backend, context string, material []byte, opts ...ExtractOption) ([]byte, error) {
	s, err := NewDeriveKey(b, context)
	if err != nil {
		return nil, err
	}
	return digestOnce(s, material, opts)
}

func digestOnce(s *Session, input []byte, opts []ExtractOption) ([]byte, error) {
	defer s.Dispose()
	if err := s.Update(input); err != nil {
		return nil, err
	}
	return s.Digest(opts...)
}
