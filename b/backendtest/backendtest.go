// package backendtest contains a test suite for hashsession.Backend implementations.
package backendtest

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brendoncarroll/go-hashsession"
)

// TestBackend runs the suite against every algorithm in algos, which b must support.
func TestBackend(t *testing.T, b hashsession.Backend, algos ...hashsession.Algorithm) {
	for _, algo := range algos {
		algo := algo
		t.Run(algo.String(), func(t *testing.T) {
			TestAlgorithm(t, b, algo)
		})
	}
}

func TestAlgorithm(t *testing.T, b hashsession.Backend, algo hashsession.Algorithm) {
	t.Run("Deterministic", func(t *testing.T) {
		input := randomBytes(0, 1000)
		h1 := hash(t, b, algo, input)
		h2 := hash(t, b, algo, input)
		require.Equal(t, h1, h2)
		require.Len(t, h1, algo.Size())
		require.NotEqual(t, h1, hash(t, b, algo, input[1:]))
	})
	t.Run("HelloSplit", func(t *testing.T) {
		s := newSession(t, b, algo)
		require.NoError(t, s.Update([]byte("hel")))
		require.NoError(t, s.Update([]byte("lo")))
		actual, err := s.Digest()
		require.NoError(t, err)
		require.Equal(t, hash(t, b, algo, []byte("hello")), actual)
	})
	t.Run("ChunkInvariance", func(t *testing.T) {
		input := randomBytes(1, 200)
		expected := hash(t, b, algo, input)
		for i := 0; i <= len(input); i++ {
			s := newSession(t, b, algo)
			require.NoError(t, s.Update(input[:i]))
			require.NoError(t, s.Update(input[i:]))
			actual, err := s.Digest()
			require.NoError(t, err)
			require.Equal(t, expected, actual, "split at %d", i)
		}
	})
	t.Run("DisposeIsTerminal", func(t *testing.T) {
		s := newSession(t, b, algo)
		s.Dispose()
		require.True(t, s.Disposed())

		err := s.Update([]byte("hello"))
		require.True(t, hashsession.IsErrUseAfterDispose(err), "%v", err)
		_, err = s.Digest()
		require.True(t, hashsession.IsErrUseAfterDispose(err), "%v", err)
		_, err = s.Reader()
		require.True(t, hashsession.IsErrUseAfterDispose(err), "%v", err)
		s.Dispose()
	})
	t.Run("DigestDisposes", func(t *testing.T) {
		s := newSession(t, b, algo)
		_, err := s.Digest()
		require.NoError(t, err)
		require.True(t, s.Disposed())
		_, err = s.Digest()
		require.True(t, hashsession.IsErrUseAfterDispose(err), "%v", err)
	})
	t.Run("WithoutDispose", func(t *testing.T) {
		s := newSession(t, b, algo)
		defer s.Dispose()
		require.NoError(t, s.Update([]byte("hel")))
		first, err := s.Digest(hashsession.WithoutDispose())
		require.NoError(t, err)
		require.False(t, s.Disposed())
		require.Equal(t, hash(t, b, algo, []byte("hel")), first)

		require.NoError(t, s.Update([]byte("lo")))
		second, err := s.Digest()
		require.NoError(t, err)
		require.Equal(t, hash(t, b, algo, []byte("hello")), second)
	})
	t.Run("DigestLength", func(t *testing.T) {
		input := []byte("hello")
		long, err := hashsession.Hash(b, algo, input, hashsession.WithLength(32))
		require.NoError(t, err)
		short, err := hashsession.Hash(b, algo, input, hashsession.WithLength(16))
		require.NoError(t, err)
		if algo.Extendable() {
			require.Len(t, long, 32)
			require.Equal(t, long[:16], short)
			longer, err := hashsession.Hash(b, algo, input, hashsession.WithLength(1000))
			require.NoError(t, err)
			require.Equal(t, long, longer[:32])
		} else {
			require.Len(t, short, algo.Size())
			require.Len(t, long, algo.Size())
			require.Equal(t, long, short)
		}
	})
	t.Run("ReaderMatchesDigest", func(t *testing.T) {
		n := 200
		if !algo.Extendable() {
			n = algo.Size()
		}
		expected, err := hashsession.Hash(b, algo, []byte("hello"), hashsession.WithLength(n))
		require.NoError(t, err)

		r := newReader(t, b, algo, []byte("hello"))
		defer r.Dispose()
		actual, err := r.ReadN(n)
		require.NoError(t, err)
		require.Equal(t, expected, actual)
		require.Equal(t, uint64(n), r.Position())
	})
	t.Run("SeekConsistency", func(t *testing.T) {
		r := newReader(t, b, algo, []byte("hello"))
		defer r.Dispose()
		total := 300
		if uint64(total) > r.Limit() {
			total = int(r.Limit())
		}
		expected, err := r.Bytes(total)
		require.NoError(t, err)

		for _, k := range splitPoints(total) {
			for _, m := range splitPoints(total - k) {
				require.NoError(t, r.SetPosition(0))
				first, err := r.ReadN(k)
				require.NoError(t, err)
				second, err := r.ReadN(m)
				require.NoError(t, err)
				require.Equal(t, expected[:k+m], append(first, second...), "k=%d m=%d", k, m)
			}
		}
		// backwards
		for i := total; i > 0; i -= 7 {
			require.NoError(t, r.SetPosition(uint64(i-1)))
			x, err := r.ReadN(1)
			require.NoError(t, err)
			require.Equal(t, expected[i-1], x[0])
		}
	})
	t.Run("SeekNearLimit", func(t *testing.T) {
		r := newReader(t, b, algo, []byte("hello"))
		defer r.Dispose()
		n := uint64(130)
		if n > r.Limit() {
			n = r.Limit()
		}
		start := r.Limit() - n
		require.NoError(t, r.SetPosition(start))
		expected, err := r.ReadN(int(n))
		require.NoError(t, err)
		require.Equal(t, r.Limit(), r.Position())

		require.NoError(t, r.SetPosition(start))
		var actual []byte
		for _, step := range []uint64{1, 63, 2, n} {
			if rem := r.Limit() - r.Position(); step > rem {
				step = rem
			}
			x, err := r.ReadN(int(step))
			require.NoError(t, err)
			actual = append(actual, x...)
		}
		require.Equal(t, expected, actual)

		_, err = r.ReadN(1)
		require.True(t, hashsession.IsErrOutOfRange(err), "%v", err)
		require.Equal(t, r.Limit(), r.Position())
	})
	t.Run("OutOfRange", func(t *testing.T) {
		r := newReader(t, b, algo, []byte("hello"))
		defer r.Dispose()
		if r.Limit() < ^uint64(0) {
			err := r.SetPosition(r.Limit() + 1)
			require.True(t, hashsession.IsErrOutOfRange(err), "%v", err)
		}
		require.NoError(t, r.SetPosition(r.Limit()-1))
		err := r.ReadInto(make([]byte, 2))
		require.True(t, hashsession.IsErrOutOfRange(err), "%v", err)
		require.Equal(t, r.Limit()-1, r.Position())
	})
	t.Run("ReaderOutlivesSession", func(t *testing.T) {
		s := newSession(t, b, algo)
		require.NoError(t, s.Update([]byte("hello")))
		r, err := s.Reader(hashsession.WithoutDispose())
		require.NoError(t, err)
		defer r.Dispose()
		require.False(t, s.Disposed())
		require.NoError(t, s.Update([]byte(" world")))
		s.Dispose()

		actual, err := r.ReadN(algo.Size())
		require.NoError(t, err)
		require.Equal(t, hash(t, b, algo, []byte("hello")), actual)
	})
	t.Run("ReaderDisposes", func(t *testing.T) {
		s := newSession(t, b, algo)
		r, err := s.Reader()
		require.NoError(t, err)
		require.True(t, s.Disposed())
		r.Dispose()
		_, err = r.ReadN(1)
		require.True(t, hashsession.IsErrUseAfterDispose(err), "%v", err)
		require.True(t, hashsession.IsErrUseAfterDispose(r.SetPosition(0)))
		r.Dispose()
	})
}

// TestKeyed checks ModeKeyed, which b must support.
func TestKeyed(t *testing.T, b hashsession.Backend) {
	key := randomBytes(2, hashsession.KeySize)
	for _, n := range []int{0, 31, 33, 64} {
		_, err := hashsession.NewKeyed(b, randomBytes(3, n))
		require.True(t, hashsession.IsErrInvalidKeyLength(err), "len=%d err=%v", n, err)
	}

	expected, err := hashsession.KeyedHash(b, key, []byte("hello"))
	require.NoError(t, err)
	require.Len(t, expected, hashsession.DefaultLength)
	plain, err := hashsession.Hash(b, hashsession.BLAKE3, []byte("hello"))
	require.NoError(t, err)
	require.NotEqual(t, plain, expected)

	s, err := hashsession.NewKeyed(b, key)
	require.NoError(t, err)
	require.NoError(t, s.Update([]byte("hel")))
	require.NoError(t, s.Update([]byte("lo")))
	actual, err := s.Digest()
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

// TestDeriveKey checks ModeDeriveKey, which b must support.
func TestDeriveKey(t *testing.T, b hashsession.Backend) {
	const context = "go-hashsession 2026-10-19 backendtest"
	material := randomBytes(4, 100)

	k1, err := hashsession.DeriveKey(b, context, material)
	require.NoError(t, err)
	k2, err := hashsession.DeriveKey(b, context+"!", material)
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)

	long, err := hashsession.DeriveKey(b, context, material, hashsession.WithLength(64))
	require.NoError(t, err)
	require.Equal(t, k1, long[:32])

	s, err := hashsession.NewDeriveKey(b, context)
	require.NoError(t, err)
	require.NoError(t, s.Update(material[:10]))
	require.NoError(t, s.Update(material[10:]))
	actual, err := s.Digest()
	require.NoError(t, err)
	require.Equal(t, k1, actual)
}

func newSession(t testing.TB, b hashsession.Backend, algo hashsession.Algorithm) *hashsession.Session {
	s, err := hashsession.New(b, algo)
	require.NoError(t, err)
	require.Equal(t, algo, s.Algorithm())
	return s
}

func newReader(t testing.TB, b hashsession.Backend, algo hashsession.Algorithm, input []byte) *hashsession.OutputReader {
	s := newSession(t, b, algo)
	require.NoError(t, s.Update(input))
	r, err := s.Reader()
	require.NoError(t, err)
	return r
}

func hash(t testing.TB, b hashsession.Backend, algo hashsession.Algorithm, input []byte) []byte {
	out, err := hashsession.Hash(b, algo, input)
	require.NoError(t, err)
	return out
}

func randomBytes(seed int64, n int) []byte {
	rng := mrand.New(mrand.NewSource(seed))
	out := make([]byte, n)
	rng.Read(out)
	return out
}

// splitPoints returns offsets in [0, n] around the 64 byte block boundaries.
func splitPoints(n int) []int {
	var ret []int
	for _, x := range []int{0, 1, 2, 31, 32, 33, 63, 64, 65, 127, 128, 129, 200} {
		if x <= n {
			ret = append(ret, x)
		}
	}
	if len(ret) == 0 || ret[len(ret)-1] != n {
		ret = append(ret, n)
	}
	return ret
}
