package handler

import (
	"time"

	"supplyledger/internal/registry/models"
	"supplyledger/pkg/domain"
)

// RequestRoleRequest is the body of POST /members.
type RequestRoleRequest struct {
	Role string `json:"role"`
}

// SetStatusRequest is the body of PUT /members/{principal}/status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type MemberResponse struct {
	ID        domain.MemberID  `json:"id"`
	Principal domain.Principal `json:"principal"`
	Role      domain.Role      `json:"role"`
	Status    models.Status    `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

func toMemberResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Principal: m.Principal,
		Role:      m.Role,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
