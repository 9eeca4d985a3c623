package hashsession

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestDisposeOnce(t *testing.T) {
	prim := newFake(BLAKE3)
	s := NewSession(prim)
	require.False(t, s.Disposed())
	s.Dispose()
	s.Dispose()
	require.NoError(t, s.Close())
	require.True(t, s.Disposed())
	require.Equal(t, 1, prim.frees)
}

func TestUseAfterDispose(t *testing.T) {
	s := NewSession(newFake(MD5))
	s.Dispose()

	err := s.Update([]byte("x"))
	require.Equal(t, ErrUseAfterDispose{Op: "update", Algorithm: MD5}, err)
	require.Contains(t, err.Error(), "after Dispose()")
	_, err = s.Write([]byte("x"))
	require.True(t, IsErrUseAfterDispose(err))
	_, err = s.Digest()
	require.Equal(t, ErrUseAfterDispose{Op: "digest", Algorithm: MD5}, err)
	_, err = s.Reader()
	require.Equal(t, ErrUseAfterDispose{Op: "reader", Algorithm: MD5}, err)
}

func TestDigestDisposes(t *testing.T) {
	prim := newFake(BLAKE3)
	s := NewSession(prim)
	require.NoError(t, s.Update([]byte("abc")))
	out, err := s.Digest()
	require.NoError(t, err)
	require.Len(t, out, DefaultLength)
	require.Equal(t, byte(3), out[0])
	require.Equal(t, 1, prim.frees)

	prim = newFake(BLAKE3)
	s = NewSession(prim)
	_, err = s.Digest(WithoutDispose(), WithLength(7))
	require.NoError(t, err)
	require.Equal(t, 0, prim.frees)
	require.NoError(t, s.Update([]byte("abc")))
	out, err = s.Digest(WithLength(7))
	require.NoError(t, err)
	require.Len(t, out, 7)
	require.Equal(t, byte(3), out[0])
}

func TestForcedLength(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := NewSession(newFake(MD5), WithLogger(logger))
	out, err := s.Digest(WithLength(32))
	require.NoError(t, err)
	require.Len(t, out, 16)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.DebugLevel, entry.Level)
	require.Equal(t, MD5, entry.Data["algo"])
}

func TestReaderDisposes(t *testing.T) {
	prim := newFake(BLAKE3)
	s := NewSession(prim)
	r, err := s.Reader()
	require.NoError(t, err)
	require.Equal(t, 1, prim.frees)
	_, err = r.ReadN(10)
	require.NoError(t, err)

	prim = newFake(BLAKE3)
	s = NewSession(prim)
	r2, err := s.Reader(WithoutDispose())
	require.NoError(t, err)
	require.Equal(t, 0, prim.frees)
	require.NoError(t, s.Update([]byte("more")))
	s.Dispose()
	x, err := r2.ReadN(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, x)
}

func TestFinalizeFrees(t *testing.T) {
	logger, hook := test.NewNullLogger()
	prim := newFake(SHA2)
	s := NewSession(prim, WithLogger(logger))
	s.finalize()
	require.Equal(t, 1, prim.frees)
	require.True(t, s.Disposed())
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	// nothing to do once disposed
	s.finalize()
	require.Equal(t, 1, prim.frees)
	require.Len(t, hook.Entries, 1)
}

func TestNewValidates(t *testing.T) {
	called := false
	b := BackendFunc(func(p Params) (Primitive, error) {
		called = true
		return newFake(p.Algorithm), nil
	})
	_, err := New(b, Algorithm(200))
	require.True(t, IsErrUnsupportedAlgorithm(err))
	require.False(t, called)

	for _, n := range []int{0, 16, 31, 33} {
		_, err = NewKeyed(b, make([]byte, n))
		require.Equal(t, ErrInvalidKeyLength{Length: n}, err)
	}
	require.False(t, called)

	var got Params
	b = BackendFunc(func(p Params) (Primitive, error) {
		got = p
		return newFake(p.Algorithm), nil
	})
	key := make([]byte, KeySize)
	key[0] = 1
	s, err := NewKeyed(b, key)
	require.NoError(t, err)
	s.Dispose()
	require.Equal(t, ModeKeyed, got.Mode)
	require.Equal(t, BLAKE3, got.Algorithm)
	require.Equal(t, byte(1), got.Key[0])

	s, err = NewDeriveKey(b, "ctx")
	require.NoError(t, err)
	s.Dispose()
	require.Equal(t, Params{Algorithm: BLAKE3, Mode: ModeDeriveKey, Context: "ctx"}, got)
}
