package ports

import (
	"context"

	"supplyledger/pkg/domain"
)

// MemberPort resolves an approved member's role for the ledger without
// depending on the registry's storage or models.
type MemberPort interface {
	// RequireApproved returns the role of an approved member. It fails with
	// CodeNotRegistered or CodeNotApproved otherwise.
	RequireApproved(ctx context.Context, principal domain.Principal) (domain.Role, error)
}
