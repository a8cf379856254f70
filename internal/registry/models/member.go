package models

import (
	"time"

	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
)

// Status is the approval state of a membership request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
	StatusCanceled: true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidStatus, "unsupported status %q", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether an admin may set next. Any status may move
// to any non-pending status, including itself; nothing returns to pending.
func (s Status) CanTransitionTo(next Status) bool {
	return next.IsValid() && next != StatusPending
}

// Member is the registry record for one principal.
//
// Invariants:
//   - at most one Member per principal, ever
//   - Role is immutable after creation
//   - Status starts pending and never returns to pending
type Member struct {
	ID        domain.MemberID  `json:"id"`
	Principal domain.Principal `json:"principal"`
	Role      domain.Role      `json:"role"`
	Status    Status           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewMember builds a pending member. The id is assigned by the store.
func NewMember(principal domain.Principal, role domain.Role, now time.Time) (*Member, error) {
	if principal.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal is required")
	}
	if !role.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidRole, "unsupported role %q", role)
	}
	return &Member{
		Principal: principal,
		Role:      role,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *Member) IsApproved() bool {
	return m.Status == StatusApproved
}

// CanSetStatus validates an admin status change.
func (m *Member) CanSetStatus(next Status) error {
	if !m.Status.CanTransitionTo(next) {
		return dErrors.Newf(dErrors.CodeInvalidStatus, "cannot set status to %q", next)
	}
	return nil
}

// ApplyStatus overwrites the status. Call CanSetStatus first.
func (m *Member) ApplyStatus(next Status, now time.Time) {
	m.Status = next
	m.UpdatedAt = now
}
