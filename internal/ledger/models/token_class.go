package models

import (
	"math"
	"strings"
	"time"

	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
)

// Kind is the pipeline stage a token class was minted at. It is derived from
// the creator's role, never chosen by the caller.
type Kind string

const (
	KindRawMaterial      Kind = "raw_material"
	KindProcessedProduct Kind = "processed_product"
	KindFinalProduct     Kind = "final_product"
)

// MaxSupply bounds a class's total supply so that balances fit a signed
// 64-bit column.
const MaxSupply uint64 = math.MaxInt64

var kindByRole = map[domain.Role]Kind{
	domain.RoleProducer: KindRawMaterial,
	domain.RoleFactory:  KindProcessedProduct,
	domain.RoleRetailer: KindFinalProduct,
}

// KindForRole returns the kind minted by role. Consumers cannot mint.
func KindForRole(role domain.Role) (Kind, error) {
	kind, ok := kindByRole[role]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeRoleCannotMint, "role %s cannot mint token classes", role)
	}
	return kind, nil
}

func (k Kind) String() string {
	return string(k)
}

// MintRequest carries the caller-supplied fields of a new token class.
type MintRequest struct {
	Name        string
	TotalSupply uint64
	Features    []byte
	ParentID    domain.TokenClassID
}

// Validate checks name and supply. Lineage is checked against the store by
// a LineagePolicy.
func (r MintRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidName, "name is required")
	}
	if r.TotalSupply == 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "total supply must be positive")
	}
	if r.TotalSupply > MaxSupply {
		return dErrors.Newf(dErrors.CodeInvalidAmount, "total supply exceeds %d", MaxSupply)
	}
	return nil
}

// TokenClass is an immutable fungible asset definition.
//
// Invariants:
//   - TotalSupply > 0 and equals the sum of all balances
//   - ParentID is NoParent or an id that existed when the class was minted
//   - the parent chain is acyclic because parents always have smaller ids
type TokenClass struct {
	ID          domain.TokenClassID `json:"id"`
	Creator     domain.Principal    `json:"creator"`
	Name        string              `json:"name"`
	TotalSupply uint64              `json:"total_supply"`
	Features    []byte              `json:"features"`
	Kind        Kind                `json:"kind"`
	ParentID    domain.TokenClassID `json:"parent_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewTokenClass builds a class from a validated request. The id is assigned
// by the store.
func NewTokenClass(creator domain.Principal, kind Kind, req MintRequest, now time.Time) *TokenClass {
	features := make([]byte, len(req.Features))
	copy(features, req.Features)
	return &TokenClass{
		Creator:     creator,
		Name:        req.Name,
		TotalSupply: req.TotalSupply,
		Features:    features,
		Kind:        kind,
		ParentID:    req.ParentID,
		CreatedAt:   now,
	}
}

func (t *TokenClass) IsRoot() bool {
	return t.ParentID.IsRoot()
}

// Holding is one principal's balance of one class.
type Holding struct {
	TokenClassID domain.TokenClassID
	Principal    domain.Principal
	Amount       uint64
}

// IndexDrift reports differences between the owned-assets index and the
// balances it is derived from.
type IndexDrift struct {
	Principal domain.Principal      `json:"principal"`
	Missing   []domain.TokenClassID `json:"missing"`
	Stale     []domain.TokenClassID `json:"stale"`
}

func (d IndexDrift) IsEmpty() bool {
	return len(d.Missing) == 0 && len(d.Stale) == 0
}
