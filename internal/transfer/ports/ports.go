package ports

import (
	"context"

	"supplyledger/pkg/domain"
)

// MemberPort resolves an approved member's role.
type MemberPort interface {
	// RequireApproved returns the role of an approved member. It fails with
	// CodeNotRegistered or CodeNotApproved otherwise.
	RequireApproved(ctx context.Context, principal domain.Principal) (domain.Role, error)
}

// LedgerPort is the slice of the asset ledger the transfer workflow needs.
// Calls made inside a transfer's unit of work join it.
type LedgerPort interface {
	// TokenClassExists fails with CodeNotFound for unknown classes.
	TokenClassExists(ctx context.Context, id domain.TokenClassID) error
	Balance(ctx context.Context, id domain.TokenClassID, principal domain.Principal) (uint64, error)
	// Move fails with CodeInsufficientBalance when from cannot cover amount.
	Move(ctx context.Context, id domain.TokenClassID, from, to domain.Principal, amount uint64) error
}
