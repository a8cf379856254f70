package handler

import (
	"time"

	"supplyledger/internal/transfer/models"
	"supplyledger/pkg/domain"
)

// InitiateRequest is the body of POST /transfers.
type InitiateRequest struct {
	To      string `json:"to" validate:"required"`
	TokenID uint64 `json:"token_id"`
	Amount  uint64 `json:"amount"`
}

type TransferResponse struct {
	ID        domain.TransferID   `json:"id"`
	From      domain.Principal    `json:"from"`
	To        domain.Principal    `json:"to"`
	TokenID   domain.TokenClassID `json:"token_id"`
	Amount    uint64              `json:"amount"`
	Status    models.Status       `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type TransferListResponse struct {
	Principal domain.Principal    `json:"principal"`
	Transfers []domain.TransferID `json:"transfers"`
}

func toTransferResponse(t *models.TransferRequest) TransferResponse {
	return TransferResponse{
		ID:        t.ID,
		From:      t.From,
		To:        t.To,
		TokenID:   t.TokenID,
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
