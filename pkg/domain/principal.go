package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "supplyledger/pkg/domain-errors"
)

// maxPrincipalLength bounds identifiers accepted at trust boundaries. Wallet
// addresses and IdP subjects are well below it.
const maxPrincipalLength = 128

// Principal is an opaque, already-authenticated caller identity such as a
// public address. It keys the member registry and every balance table.
//
// Invariant: a parsed Principal is non-empty, valid UTF-8, at most 128 bytes and
// contains no whitespace, control or format characters. Comparison is exact;
// no case folding is applied.
type Principal string

// ParsePrincipal validates an identifier received from outside the core.
//
// Errors: returns CodeInvalidInput for empty, oversized or malformed input.
func ParsePrincipal(s string) (Principal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is required")
	}
	if len(s) > maxPrincipalLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal must be valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "principal contains invalid characters")
		}
	}
	return Principal(s), nil
}

func (p Principal) String() string {
	return string(p)
}

// IsNil reports whether the principal is the zero value.
func (p Principal) IsNil() bool {
	return p == ""
}
