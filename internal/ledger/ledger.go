package ledger

import (
	"log/slog"

	"supplyledger/internal/ledger/handler"
	"supplyledger/internal/ledger/ports"
	"supplyledger/internal/ledger/service"
	"supplyledger/pkg/platform/tx"
)

// Service exposes the asset ledger.
type Service = service.Service

// Handler wires HTTP endpoints to the ledger service.
type Handler = handler.Handler

// NewService constructs the ledger with required dependencies.
func NewService(classes service.TokenClassStore, holdings service.HoldingStore, members ports.MemberPort, runner tx.Runner, opts ...service.Option) (*Service, error) {
	return service.New(classes, holdings, members, runner, opts...)
}

// NewHandler constructs an HTTP handler for the token class routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
