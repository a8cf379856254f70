package models

import (
	"fmt"

	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
)

// ParentFinder resolves a candidate parent class. It returns nil, nil when
// no class has the id.
type ParentFinder func(id domain.TokenClassID) (*TokenClass, error)

// LineagePolicy decides which parent a creator of a given role may name.
type LineagePolicy interface {
	Name() string
	CheckParent(role domain.Role, parentID domain.TokenClassID, find ParentFinder) error
}

const (
	LineageStrict = "strict"
	LineageLoose  = "loose"
)

// ParseLineagePolicy maps a configured name to a policy.
func ParseLineagePolicy(name string) (LineagePolicy, error) {
	switch name {
	case "", LineageStrict:
		return StrictLineage{}, nil
	case LineageLoose:
		return LooseLineage{}, nil
	default:
		return nil, fmt.Errorf("unknown lineage policy %q", name)
	}
}

// StrictLineage pins each stage to the kind of its parent: producers mint
// roots, factories derive from raw materials, retailers from processed
// products.
type StrictLineage struct{}

var requiredParentKind = map[domain.Role]Kind{
	domain.RoleFactory:  KindRawMaterial,
	domain.RoleRetailer: KindProcessedProduct,
}

func (StrictLineage) Name() string { return LineageStrict }

func (StrictLineage) CheckParent(role domain.Role, parentID domain.TokenClassID, find ParentFinder) error {
	if role == domain.RoleProducer {
		if !parentID.IsRoot() {
			return dErrors.Newf(dErrors.CodeUnexpectedParent, "producers mint root classes, got parent %s", parentID)
		}
		return nil
	}
	want, ok := requiredParentKind[role]
	if !ok {
		return dErrors.Newf(dErrors.CodeRoleCannotMint, "role %s cannot mint token classes", role)
	}
	parent, err := findParent(parentID, find)
	if err != nil {
		return err
	}
	if parent.Kind != want {
		return dErrors.Newf(dErrors.CodeParentKindMismatch, "%s parent must be %s, got %s", role, want, parent.Kind)
	}
	return nil
}

// LooseLineage only requires that a named parent exists. Factories and
// retailers must still name one; producers may mint roots.
type LooseLineage struct{}

func (LooseLineage) Name() string { return LineageLoose }

func (LooseLineage) CheckParent(role domain.Role, parentID domain.TokenClassID, find ParentFinder) error {
	if role == domain.RoleProducer && parentID.IsRoot() {
		return nil
	}
	_, err := findParent(parentID, find)
	return err
}

func findParent(parentID domain.TokenClassID, find ParentFinder) (*TokenClass, error) {
	if parentID.IsRoot() {
		return nil, dErrors.New(dErrors.CodeParentNotFound, "a parent token class is required")
	}
	parent, err := find(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, dErrors.Newf(dErrors.CodeParentNotFound, "parent token class %s not found", parentID)
	}
	return parent, nil
}
