package adapters

import (
	"context"

	"supplyledger/internal/ledger/ports"
	registryService "supplyledger/internal/registry/service"
	"supplyledger/pkg/domain"
)

// RegistryAdapter is an in-process adapter that implements ports.MemberPort
// by calling the registry service directly. Calls made inside a ledger
// transaction join it.
type RegistryAdapter struct {
	registry *registryService.Service
}

func NewRegistryAdapter(registry *registryService.Service) ports.MemberPort {
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) RequireApproved(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	member, err := a.registry.RequireApproved(ctx, principal)
	if err != nil {
		return "", err
	}
	return member.Role, nil
}
