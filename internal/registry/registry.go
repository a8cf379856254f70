package registry

import (
	"log/slog"

	"supplyledger/internal/registry/handler"
	"supplyledger/internal/registry/service"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/tx"
)

// Service exposes the membership registry.
type Service = service.Service

// Handler wires HTTP endpoints to the registry service.
type Handler = handler.Handler

// NewService constructs the registry with required dependencies.
func NewService(members service.MemberStore, runner tx.Runner, admin domain.Principal, opts ...service.Option) (*Service, error) {
	return service.New(members, runner, admin, opts...)
}

// NewHandler constructs an HTTP handler for the member routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
