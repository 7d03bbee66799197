// Package entity contains the core business objects of the marketplace.
package entity

import "slices"

// Role represents the access level of an account.
type Role string

const (
	// RoleUser is a regular shopper.
	RoleUser Role = "USER"
	// RoleAdmin manages the catalog, users and orders.
	RoleAdmin Role = "ADMIN"
	// RoleDelivery may only view and advance orders assigned to them.
	RoleDelivery Role = "DELIVERY"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDelivery:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
