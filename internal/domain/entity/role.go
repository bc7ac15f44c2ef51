// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the kind of role profile an identity can hold.
type Role string

const (
	// RoleAdmin indicates a library administrator.
	RoleAdmin Role = "admin"
	// RoleEmployee indicates a library employee.
	RoleEmployee Role = "employee"
	// RoleCustomer indicates a library customer.
	RoleCustomer Role = "customer"
)

// credentialOrder is the fixed priority in which role profiles are
// consulted during credential resolution: admin first, then employee,
// then customer. The first PRESENT profile decides the outcome.
var credentialOrder = Roles{RoleAdmin, RoleEmployee, RoleCustomer}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
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

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
