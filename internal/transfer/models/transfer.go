package models

import (
	"time"

	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
)

// Status is the settlement state of a transfer request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the request can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// InitiateRequest carries the caller-supplied fields of a transfer.
type InitiateRequest struct {
	To      domain.Principal
	TokenID domain.TokenClassID
	Amount  uint64
}

// TransferRequest is a two-phase move of units from one holder to the next
// pipeline stage. Balances only change when the recipient accepts.
//
// Invariants:
//   - From != To and Amount > 0
//   - Status starts pending and changes at most once
type TransferRequest struct {
	ID        domain.TransferID   `json:"id"`
	From      domain.Principal    `json:"from"`
	To        domain.Principal    `json:"to"`
	TokenID   domain.TokenClassID `json:"token_id"`
	Amount    uint64              `json:"amount"`
	Status    Status              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewTransferRequest builds a pending request. The id is assigned by the store.
func NewTransferRequest(from domain.Principal, req InitiateRequest, now time.Time) *TransferRequest {
	return &TransferRequest{
		From:      from,
		To:        req.To,
		TokenID:   req.TokenID,
		Amount:    req.Amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *TransferRequest) IsPending() bool {
	return t.Status == StatusPending
}

// CanSettle checks that caller may accept or reject the request.
func (t *TransferRequest) CanSettle(caller domain.Principal) error {
	if caller != t.To {
		return dErrors.New(dErrors.CodeUnauthorized, "only the recipient may settle a transfer")
	}
	if !t.IsPending() {
		return dErrors.Newf(dErrors.CodeNotPending, "transfer %s is already %s", t.ID, t.Status)
	}
	return nil
}

func (t *TransferRequest) Accept(now time.Time) {
	t.Status = StatusAccepted
	t.UpdatedAt = now
}

func (t *TransferRequest) Reject(now time.Time) {
	t.Status = StatusRejected
	t.UpdatedAt = now
}
