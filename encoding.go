package hashsession

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Encoding is a text encoding for output bytes.
type Encoding uint8

const (
	Hex Encoding = iota
	Base64
	Base64URL
)

// ParseEncoding parses "hex", "base64" or "base64url".
func ParseEncoding(x string) (Encoding, error) {
	switch strings.ToLower(x) {
	case "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	case "base64url":
		return Base64URL, nil
	default:
		return 0, errors.Errorf("hashsession: unknown encoding %q", x)
	}
}

func (e Encoding) String() string {
	switch e {
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	case Base64URL:
		return "base64url"
	default:
		return "unknown"
	}
}

func (e Encoding) EncodeToString(data []byte) (string, error) {
	switch e {
	case Hex:
		return hex.EncodeToString(data), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	case Base64URL:
		return base64.RawURLEncoding.EncodeToString(data), nil
	default:
		return "", errors.Errorf("hashsession: unknown encoding %d", uint8(e))
	}
}
