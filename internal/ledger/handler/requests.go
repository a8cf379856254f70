package handler

import (
	"time"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
)

// MintRequest is the body of POST /token-classes. Features travel as
// base64, the JSON encoding of opaque bytes.
type MintRequest struct {
	Name        string `json:"name"`
	TotalSupply uint64 `json:"total_supply"`
	Features    []byte `json:"features"`
	ParentID    uint64 `json:"parent_id"`
}

func (r MintRequest) toModel() models.MintRequest {
	return models.MintRequest{
		Name:        r.Name,
		TotalSupply: r.TotalSupply,
		Features:    r.Features,
		ParentID:    domain.TokenClassID(r.ParentID),
	}
}

type TokenClassResponse struct {
	ID          domain.TokenClassID `json:"id"`
	Creator     domain.Principal    `json:"creator"`
	Name        string              `json:"name"`
	TotalSupply uint64              `json:"total_supply"`
	Features    []byte              `json:"features"`
	Kind        models.Kind         `json:"kind"`
	ParentID    domain.TokenClassID `json:"parent_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

type LineageResponse struct {
	Chain []TokenClassResponse `json:"chain"`
}

type BalanceResponse struct {
	TokenClassID domain.TokenClassID `json:"token_class_id"`
	Principal    domain.Principal    `json:"principal"`
	Amount       uint64              `json:"amount"`
}

type OwnedClassesResponse struct {
	Principal    domain.Principal      `json:"principal"`
	TokenClasses []domain.TokenClassID `json:"token_classes"`
}

func toTokenClassResponse(tc *models.TokenClass) TokenClassResponse {
	return TokenClassResponse{
		ID:          tc.ID,
		Creator:     tc.Creator,
		Name:        tc.Name,
		TotalSupply: tc.TotalSupply,
		Features:    tc.Features,
		Kind:        tc.Kind,
		ParentID:    tc.ParentID,
		CreatedAt:   tc.CreatedAt,
	}
}
