package adapters

import (
	"context"

	ledgerService "supplyledger/internal/ledger/service"
	"supplyledger/internal/transfer/ports"
	"supplyledger/pkg/domain"
)

// LedgerAdapter implements ports.LedgerPort by calling the ledger service
// directly, so settlement runs in the same unit of work as the status change.
type LedgerAdapter struct {
	ledger *ledgerService.Service
}

func NewLedgerAdapter(ledger *ledgerService.Service) ports.LedgerPort {
	return &LedgerAdapter{ledger: ledger}
}

func (a *LedgerAdapter) TokenClassExists(ctx context.Context, id domain.TokenClassID) error {
	_, err := a.ledger.GetTokenClass(ctx, id)
	return err
}

func (a *LedgerAdapter) Balance(ctx context.Context, id domain.TokenClassID, principal domain.Principal) (uint64, error) {
	return a.ledger.GetBalance(ctx, id, principal)
}

func (a *LedgerAdapter) Move(ctx context.Context, id domain.TokenClassID, from, to domain.Principal, amount uint64) error {
	return a.ledger.Move(ctx, id, from, to, amount)
}
