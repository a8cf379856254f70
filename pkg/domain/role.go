package domain

import dErrors "supplyledger/pkg/domain-errors"

// Role is the pipeline stage a member asks to participate as.
// Invariant: the value must be one of the four supported roles.
//
// Usage: construct via ParseRole at trust boundaries; direct casting bypasses
// validation.
type Role string

const (
	RoleProducer Role = "producer"
	RoleFactory  Role = "factory"
	RoleRetailer Role = "retailer"
	RoleConsumer Role = "consumer"
)

// validRoles is the single source of truth for supported roles.
var validRoles = map[Role]bool{
	RoleProducer: true,
	RoleFactory:  true,
	RoleRetailer: true,
	RoleConsumer: true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidRole when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidRole, "unsupported role %q", s)
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

// Roles lists every role in pipeline order.
func Roles() []Role {
	return []Role{RoleProducer, RoleFactory, RoleRetailer, RoleConsumer}
}
