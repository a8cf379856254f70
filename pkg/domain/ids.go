package domain

import (
	"strconv"
	"strings"

	dErrors "supplyledger/pkg/domain-errors"
)

// Sequence identifiers. Each entity kind has its own counter starting at 1;
// zero is never assigned and doubles as "no parent" for token classes.
type (
	MemberID     uint64
	TokenClassID uint64
	TransferID   uint64
)

// NoParent marks a root token class in the lineage forest.
const NoParent TokenClassID = 0

func parseSequenceID(s, kind string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is required", kind)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id", kind)
	}
	return v, nil
}

// ParseTokenClassID parses a decimal token class id. Zero parses; it never
// names a minted class, so lookups report it as not found.
func ParseTokenClassID(s string) (TokenClassID, error) {
	v, err := parseSequenceID(s, "token class")
	if err != nil {
		return 0, err
	}
	return TokenClassID(v), nil
}

// ParseTransferID parses a decimal transfer request id.
func ParseTransferID(s string) (TransferID, error) {
	v, err := parseSequenceID(s, "transfer")
	if err != nil {
		return 0, err
	}
	return TransferID(v), nil
}

func (id MemberID) String() string     { return strconv.FormatUint(uint64(id), 10) }
func (id TokenClassID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id TransferID) String() string   { return strconv.FormatUint(uint64(id), 10) }

// IsRoot reports whether the id is the lineage sentinel rather than a real class.
func (id TokenClassID) IsRoot() bool {
	return id == NoParent
}
