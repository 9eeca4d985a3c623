package hashsession

import (
	"strings"
)

// DefaultLength is the number of bytes produced by Digest for extendable algorithms
// when no length is requested.
const DefaultLength = 32

// Algorithm identifies a hash function.  The set of algorithms is closed.
type Algorithm uint8

const (
	BLAKE3 Algorithm = iota + 1
	SHA2
	MD5
	BLAKE2b
	SHAKE256
)

var algorithmTags = map[Algorithm]string{
	BLAKE3:   "blake3",
	SHA2:     "sha2",
	MD5:      "md5",
	BLAKE2b:  "blake2b",
	SHAKE256: "shake256",
}

// Algorithms returns every supported Algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{BLAKE3, SHA2, MD5, BLAKE2b, SHAKE256}
}

// ParseAlgorithm returns the Algorithm for tag.
// Unknown tags are an error, they never fall back to a default.
func ParseAlgorithm(tag string) (Algorithm, error) {
	x := strings.ToLower(strings.TrimSpace(tag))
	for _, algo := range Algorithms() {
		if algorithmTags[algo] == x {
			return algo, nil
		}
	}
	return 0, ErrUnsupportedAlgorithm{Tag: tag}
}

func (a Algorithm) String() string {
	if tag, ok := algorithmTags[a]; ok {
		return tag
	}
	return "unknown"
}

// Valid returns true if a is one of the Algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithmTags[a]
	return ok
}

// Extendable returns true if a is an XOF, which can produce output of any length.
func (a Algorithm) Extendable() bool {
	switch a {
	case BLAKE3, SHAKE256:
		return true
	default:
		return false
	}
}

// Size is the default output length of a.
// For algorithms which are not Extendable, it is also the only output length.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return 16
	case SHA2, BLAKE2b:
		return 32
	default:
		return DefaultLength
	}
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrUnsupportedAlgorithm{Tag: a.String()}
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(data []byte) error {
	algo, err := ParseAlgorithm(string(data))
	if err != nil {
		return err
	}
	*a = algo
	return nil
}
