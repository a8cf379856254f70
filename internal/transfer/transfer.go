package transfer

import (
	"log/slog"

	"supplyledger/internal/transfer/handler"
	"supplyledger/internal/transfer/ports"
	"supplyledger/internal/transfer/service"
	"supplyledger/pkg/platform/tx"
)

// Service exposes the transfer workflow.
type Service = service.Service

// Handler wires HTTP endpoints to the transfer service.
type Handler = handler.Handler

// NewService constructs the transfer workflow with required dependencies.
func NewService(transfers service.TransferStore, members ports.MemberPort, ledger ports.LedgerPort, runner tx.Runner, opts ...service.Option) (*Service, error) {
	return service.New(transfers, members, ledger, runner, opts...)
}

// NewHandler constructs an HTTP handler for the transfer routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
