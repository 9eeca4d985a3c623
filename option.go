package hashsession

import "github.com/sirupsen/logrus"

type SessionOption func(s *Session)

// WithLogger sets the logger used by the Session, and by OutputReaders created from it.
func WithLogger(l logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

type extractParams struct {
	length  int
	dispose bool
}

// ExtractOption configures Digest and Reader
type ExtractOption func(p *extractParams)

// WithLength sets the number of bytes produced by Digest.
// It is ignored by algorithms which are not Extendable, they always produce Algorithm.Size bytes.
func WithLength(n int) ExtractOption {
	if n < 0 {
		panic(n)
	}
	return func(p *extractParams) {
		p.length = n
	}
}

// WithoutDispose keeps the Session usable after Digest or Reader.
// Further Updates continue from the accumulated input.
func WithoutDispose() ExtractOption {
	return func(p *extractParams) {
		p.dispose = false
	}
}

func collectExtractParams(algo Algorithm, opts []ExtractOption) extractParams {
	p := extractParams{
		length:  algo.Size(),
		dispose: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
