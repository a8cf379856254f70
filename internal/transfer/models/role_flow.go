package models

import (
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
)

// nextStage is the only role each sender may transfer to.
var nextStage = map[domain.Role]domain.Role{
	domain.RoleProducer: domain.RoleFactory,
	domain.RoleFactory:  domain.RoleRetailer,
	domain.RoleRetailer: domain.RoleConsumer,
}

// CheckSender rejects senders that sit at the end of the pipeline.
func CheckSender(from domain.Role) error {
	if _, ok := nextStage[from]; !ok {
		return dErrors.Newf(dErrors.CodeInvalidRoleFlow, "%s members cannot send transfers", from)
	}
	return nil
}

// CheckRoleFlow allows a transfer only to the next pipeline stage.
func CheckRoleFlow(from, to domain.Role) error {
	if err := CheckSender(from); err != nil {
		return err
	}
	if nextStage[from] != to {
		return dErrors.Newf(dErrors.CodeInvalidRoleFlow, "%s may only transfer to %s, not %s", from, nextStage[from], to)
	}
	return nil
}
