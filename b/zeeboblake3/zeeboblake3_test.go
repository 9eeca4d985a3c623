package zeeboblake3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/b/backendtest"
	"github.com/brendoncarroll/go-hashsession/b/lukeblake3"
)

func TestBackend(t *testing.T) {
	backendtest.TestBackend(t, New(), hashsession.BLAKE3)
}

func TestKeyed(t *testing.T) {
	backendtest.TestKeyed(t, New())
}

func TestDeriveKey(t *testing.T) {
	backendtest.TestDeriveKey(t, New())
}

func TestDeriveKeyMatchesLibrary(t *testing.T) {
	const context = "go-hashsession zeeboblake3 test"
	material := []byte("key material")
	expected := make([]byte, 48)
	blake3.DeriveKey(context, material, expected)

	actual, err := hashsession.DeriveKey(New(), context, material, hashsession.WithLength(48))
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func TestDeriveKeyLimit(t *testing.T) {
	s, err := hashsession.NewDeriveKey(New(), "context")
	require.NoError(t, err)
	require.NoError(t, s.Update([]byte("material")))
	r, err := s.Reader()
	require.NoError(t, err)
	defer r.Dispose()

	require.Equal(t, uint64(math.MaxInt64), r.Limit())
	require.NoError(t, r.SetPosition(math.MaxInt64-8))
	_, err = r.ReadN(8)
	require.NoError(t, err)
	_, err = r.ReadN(1)
	require.True(t, hashsession.IsErrOutOfRange(err), "%v", err)
}

func TestMatchesLuke(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	input := make([]byte, 5000)
	for i := range input {
		input[i] = byte(i % 251)
	}
	plain1, err := hashsession.Hash(New(), hashsession.BLAKE3, input, hashsession.WithLength(100))
	require.NoError(t, err)
	plain2, err := hashsession.Hash(lukeblake3.New(), hashsession.BLAKE3, input, hashsession.WithLength(100))
	require.NoError(t, err)
	require.Equal(t, plain1, plain2)

	keyed1, err := hashsession.KeyedHash(New(), key[:], input)
	require.NoError(t, err)
	keyed2, err := hashsession.KeyedHash(lukeblake3.New(), key[:], input)
	require.NoError(t, err)
	require.Equal(t, keyed1, keyed2)
}

func TestUnsupported(t *testing.T) {
	_, err := New().NewPrimitive(hashsession.Params{Algorithm: hashsession.MD5})
	require.True(t, hashsession.IsErrUnsupportedAlgorithm(err))
}
