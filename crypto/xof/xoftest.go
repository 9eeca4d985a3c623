package xof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheme[S any](t *testing.T, s Scheme[S]) {
	t.Run("NewReset", func(t *testing.T) {
		x := s.New()
		unused := s.New()

		s.Absorb(&x, []byte("input string"))
		s.Reset(&x)

		var expected, actual [64]byte
		s.Expand(&unused, expected[:])
		s.Expand(&x, actual[:])
		require.Equal(t, expected, actual)
	})
	t.Run("Clone", func(t *testing.T) {
		x := s.New()
		s.Absorb(&x, []byte("hel"))
		var y S
		s.Clone(&y, &x)
		s.Absorb(&x, []byte("lo"))
		s.Absorb(&y, []byte("lo"))

		var expected, actual [64]byte
		s.Expand(&x, expected[:])
		s.Expand(&y, actual[:])
		require.Equal(t, expected, actual)
		require.Equal(t, Sum512(s, []byte("hello")), expected)
	})
	t.Run("Peek", func(t *testing.T) {
		x := s.New()
		s.Absorb(&x, []byte("hel"))
		var first [32]byte
		Peek(s, &x, first[:])
		require.Equal(t, Sum256(s, []byte("hel")), first)

		s.Absorb(&x, []byte("lo"))
		var second [32]byte
		Peek(s, &x, second[:])
		require.Equal(t, Sum256(s, []byte("hello")), second)
	})
	t.Run("ChunkedExpand", func(t *testing.T) {
		expected := Sum512(s, []byte("input string"))
		for i := 0; i <= len(expected); i++ {
			x := s.New()
			s.Absorb(&x, []byte("input string"))
			var actual [64]byte
			s.Expand(&x, actual[:i])
			s.Expand(&x, actual[i:])
			require.Equal(t, expected, actual, "split at %d", i)
		}
	})
	t.Run("Discard", func(t *testing.T) {
		expected := Sum512(s, []byte("input string"))
		x := s.New()
		s.Absorb(&x, []byte("input string"))
		Discard(s, &x, 40)
		var actual [24]byte
		s.Expand(&x, actual[:])
		require.Equal(t, expected[40:], actual[:])
	})
}
