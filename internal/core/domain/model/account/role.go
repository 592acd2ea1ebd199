package account

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Role tags an account with exactly one side of the marketplace.
// Role is data, not code paths: the reset service and the auth middleware are
// parametrized by it instead of duplicating per-role implementations.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleCustomer places orders.
	RoleCustomer

	// RoleVendor owns products and advances or cancels orders containing them.
	RoleVendor

	// RoleDelivery accepts and delivers orders.
	RoleDelivery

	// RoleAdmin is reserved for back-office tooling.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses the wire representation of a role.
// Matching is case-insensitive; anything unrecognized is invalid.
func RoleFromString(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getValidRoleStrings() {
		if str == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects RoleUnknown and any out-of-range value.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation, "unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
