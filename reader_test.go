package hashsession

import (
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeReader(limit uint64) (*OutputReader, *fakeCursor) {
	c := &fakeCursor{seed: 0xaa, limit: limit}
	return NewOutputReader(BLAKE3, c), c
}

func expectedFake(off, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(off+i) ^ 0xaa
	}
	return out
}

func TestReadAdvances(t *testing.T) {
	r, _ := newFakeReader(1000)
	x, err := r.ReadN(10)
	require.NoError(t, err)
	require.Equal(t, expectedFake(0, 10), x)
	require.Equal(t, uint64(10), r.Position())

	buf := make([]byte, 5)
	require.NoError(t, r.ReadInto(buf))
	require.Equal(t, expectedFake(10, 5), buf)
	require.Equal(t, uint64(15), r.Position())

	_, err = r.ReadN(-1)
	require.True(t, IsErrOutOfRange(err))
}

func TestReadAtEnd(t *testing.T) {
	r, _ := newFakeReader(20)
	require.NoError(t, r.SetPosition(15))

	err := r.ReadInto(make([]byte, 6))
	require.Equal(t, ErrOutOfRange{Position: 15, Length: 6, Limit: 20}, err)
	require.Equal(t, uint64(15), r.Position())

	buf := make([]byte, 10)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, expectedFake(15, 5), buf[:n])
	n, err = r.Read(buf)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, n)

	all, err := io.ReadAll(io.NewSectionReader(r, 0, 100))
	require.NoError(t, err)
	require.Equal(t, expectedFake(0, 20), all)
}

func TestSetPosition(t *testing.T) {
	r, c := newFakeReader(math.MaxUint64)
	require.NoError(t, r.SetPosition(math.MaxUint64))
	require.Equal(t, uint64(math.MaxUint64), c.off)
	_, err := r.ReadN(1)
	require.True(t, IsErrOutOfRange(err))

	require.NoError(t, r.SetPosition(math.MaxUint64-3))
	x, err := r.ReadN(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0xfc ^ 0xaa, 0xfd ^ 0xaa, 0xfe ^ 0xaa}, x)

	r, _ = newFakeReader(32)
	require.Equal(t, ErrOutOfRange{Position: 33, Limit: 32}, r.SetPosition(33))
}

func TestSeek(t *testing.T) {
	r, _ := newFakeReader(100)
	pos, err := r.Seek(10, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(10), pos)
	pos, err = r.Seek(-4, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(6), pos)
	pos, err = r.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	require.Equal(t, int64(99), pos)

	for _, tc := range []struct {
		offset int64
		whence int
	}{
		{-1, io.SeekStart},
		{101, io.SeekStart},
		{-100, io.SeekCurrent},
		{1, io.SeekEnd},
		{math.MinInt64, io.SeekCurrent},
	} {
		_, err := r.Seek(tc.offset, tc.whence)
		require.True(t, IsErrOutOfRange(err), "%+v %v", tc, err)
		require.Equal(t, uint64(99), r.Position())
	}
	_, err = r.Seek(0, 17)
	require.Error(t, err)

	r, _ = newFakeReader(math.MaxUint64)
	_, err = r.Seek(0, io.SeekEnd)
	require.True(t, IsErrOutOfRange(err))
	pos, err = r.Seek(math.MaxInt64, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), pos)
}

func TestReadNPastLimit(t *testing.T) {
	r, _ := newFakeReader(32)
	require.NoError(t, r.SetPosition(30))
	_, err := r.ReadN(1 << 62)
	require.Equal(t, ErrOutOfRange{Position: 30, Length: 1 << 62, Limit: 32}, err)
	_, err = r.ReadN(-1)
	require.True(t, IsErrOutOfRange(err))
	_, err = r.Bytes(math.MaxInt)
	require.True(t, IsErrOutOfRange(err))
	require.Equal(t, uint64(0), r.Position())
}

func TestSeekOverflowKeepsOffset(t *testing.T) {
	r, _ := newFakeReader(math.MaxUint64)
	require.NoError(t, r.SetPosition(10))
	_, err := r.Seek(math.MinInt64, io.SeekCurrent)
	require.True(t, IsErrOutOfRange(err))
	require.Contains(t, err.Error(), fmt.Sprintf("seek %d from 10", int64(math.MinInt64)))
	require.Equal(t, uint64(10), r.Position())
}

func TestReadAt(t *testing.T) {
	r, _ := newFakeReader(50)
	require.NoError(t, r.SetPosition(7))
	buf := make([]byte, 10)
	n, err := r.ReadAt(buf, 20)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, expectedFake(20, 10), buf)
	require.Equal(t, uint64(7), r.Position())

	n, err = r.ReadAt(buf, 45)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 5, n)
	require.Equal(t, uint64(7), r.Position())

	_, err = r.ReadAt(buf, -1)
	require.True(t, IsErrOutOfRange(err))

	x, err := r.ReadN(1)
	require.NoError(t, err)
	require.Equal(t, expectedFake(7, 1), x)
}

func TestBytes(t *testing.T) {
	r, _ := newFakeReader(50)
	require.NoError(t, r.SetPosition(30))
	x, err := r.Bytes(4)
	require.NoError(t, err)
	require.Equal(t, expectedFake(0, 4), x)
	require.Equal(t, uint64(4), r.Position())

	s, err := r.EncodeToString(Hex, 2)
	require.NoError(t, err)
	require.Equal(t, "aaab", s)
	s, err = r.EncodeToString(Base64, 3)
	require.NoError(t, err)
	require.Equal(t, "qquo", s)

	_, err = r.Bytes(51)
	require.True(t, IsErrOutOfRange(err))
}

func TestReaderDispose(t *testing.T) {
	r, c := newFakeReader(50)
	r.Dispose()
	require.True(t, c.freed)
	require.NoError(t, r.Close())

	_, err := r.ReadN(1)
	require.Equal(t, ErrUseAfterDispose{Op: "read", Algorithm: BLAKE3}, err)
	_, err = r.Read(make([]byte, 1))
	require.True(t, IsErrUseAfterDispose(err))
	_, err = r.Seek(0, io.SeekStart)
	require.True(t, IsErrUseAfterDispose(err))
	_, err = r.ReadAt(make([]byte, 1), 0)
	require.True(t, IsErrUseAfterDispose(err))
	_, err = r.Bytes(1)
	require.True(t, IsErrUseAfterDispose(err))
}

func TestAddOffset(t *testing.T) {
	x, ok := addOffset(10, math.MinInt64)
	require.False(t, ok)
	require.Zero(t, x)
	x, ok = addOffset(math.MaxUint64, math.MinInt64)
	require.True(t, ok)
	require.Equal(t, uint64(math.MaxInt64), x)
	_, ok = addOffset(math.MaxUint64, 1)
	require.False(t, ok)
	x, ok = addOffset(5, -5)
	require.True(t, ok)
	require.Zero(t, x)
}
