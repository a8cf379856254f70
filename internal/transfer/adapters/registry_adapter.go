package adapters

import (
	"context"

	registryService "supplyledger/internal/registry/service"
	"supplyledger/internal/transfer/ports"
	"supplyledger/pkg/domain"
)

// RegistryAdapter implements ports.MemberPort in-process.
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
