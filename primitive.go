package hashsession

import "fmt"

// Cursor is a seekable view of the output of a finalized hash state.
// The output at any offset depends only on the state and the offset.
type Cursor interface {
	// Fill fills dst with output starting at the current offset, and advances the offset by len(dst).
	// Callers must not Fill past Limit.
	Fill(dst []byte)
	// SetPosition moves the current offset to off.
	// Callers must not set a position greater than Limit.
	SetPosition(off uint64)
	// Limit is the exclusive end of the output which can be addressed by the cursor.
	Limit() uint64
	// Free releases any resources held by the cursor.
	Free()
}

// Primitive is a stateful hash function instance supplied by a Backend.
type Primitive interface {
	// Algorithm returns the algorithm computed by the primitive.
	Algorithm() Algorithm
	// Update absorbs data into the hash state.
	Update(data []byte)
	// Digest writes output starting at offset 0 to dst.
	// It does not change the hash state, Update can be called afterwards.
	Digest(dst []byte)
	// Reader returns a Cursor over the output of the current state.
	// The Cursor is independent of the Primitive and remains valid after Free.
	Reader() Cursor
	// Free releases the hash state.
	Free()
}

// Mode selects how a Primitive is seeded before it absorbs input.
type Mode uint8

const (
	// ModeHash is the regular unkeyed hash
	ModeHash Mode = iota
	// ModeKeyed seeds the primitive with a KeySize byte key
	ModeKeyed
	// ModeDeriveKey seeds the primitive with a context string
	ModeDeriveKey
)

func (m Mode) String() string {
	switch m {
	case ModeHash:
		return "hash"
	case ModeKeyed:
		return "keyed"
	case ModeDeriveKey:
		return "derive-key"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Params are passed to a Backend to create a Primitive.
type Params struct {
	Algorithm Algorithm
	Mode      Mode
	// Key is set for ModeKeyed
	Key *[KeySize]byte
	// Context is set for ModeDeriveKey
	Context string
}

// Unsupported returns the error a Backend should return when it cannot serve p.
func (p Params) Unsupported() error {
	return ErrUnsupportedAlgorithm{Tag: p.Algorithm.String(), Mode: p.Mode}
}

// Backend creates Primitives.
// Backends are passed explicitly to the constructors in this package, there is no global backend.
type Backend interface {
	// NewPrimitive returns a Primitive for p, or ErrUnsupportedAlgorithm.
	NewPrimitive(p Params) (Primitive, error)
}

// BackendFunc is a Backend implemented by a function.
type BackendFunc func(p Params) (Primitive, error)

func (f BackendFunc) NewPrimitive(p Params) (Primitive, error) {
	return f(p)
}
