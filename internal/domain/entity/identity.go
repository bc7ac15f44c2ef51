// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the root account record, keyed by email. One identity may
// hold up to three independent role profiles at the same time; a nil
// pointer means the identity does not carry that role.
type Identity struct {
	ID        uuid.UUID        // The unique identifier for the identity record.
	Email     string           // Globally unique; doubles as the login username.
	Admin     *RoleProfile     // Present when the identity holds the admin role.
	Employee  *RoleProfile     // Present when the identity holds the employee role.
	Customer  *CustomerProfile // Present when the identity holds the customer role.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleProfile is the role-specific attribute bundle nested inside an
// Identity: the credential plus the personal data captured at registration.
type RoleProfile struct {
	IdentityID     uuid.UUID // Links the profile to its owning Identity.
	Role           Role      // Self-descriptor; always equals the slot the profile occupies.
	SecretHash     string    // bcrypt hash of the login secret.
	Name           string
	LastName       string
	DocumentType   string
	DocumentNumber string // Unique within this role's population, not globally.
	Cellphone      string
	Address        string
	Birthday       time.Time
	UpdatedAt      time.Time
}

// CustomerProfile is a RoleProfile that additionally owns the customer's
// loan history. Loans keeps insertion order; entries are never removed,
// only closed.
type CustomerProfile struct {
	RoleProfile

	Loans []*Loan
}

// HasRole reports whether the identity carries the given role profile.
func (i *Identity) HasRole(role Role) bool {
	switch role {
	case RoleAdmin:
		return i.Admin != nil
	case RoleEmployee:
		return i.Employee != nil
	case RoleCustomer:
		return i.Customer != nil
	default:
		return false
	}
}

// ProfileFor returns the role profile occupying the given slot, or nil.
// For customers this is the embedded RoleProfile without the loans.
func (i *Identity) ProfileFor(role Role) *RoleProfile {
	switch role {
	case RoleAdmin:
		return i.Admin
	case RoleEmployee:
		return i.Employee
	case RoleCustomer:
		if i.Customer == nil {
			return nil
		}

		return &i.Customer.RoleProfile
	default:
		return nil
	}
}

// Roles lists every role the identity currently holds.
func (i *Identity) Roles() Roles {
	var roles Roles
	for _, role := range credentialOrder {
		if i.HasRole(role) {
			roles = append(roles, role)
		}
	}

	return roles
}

// CredentialProfile returns the first PRESENT profile in the fixed
// priority order admin, employee, customer. Resolution never falls
// through: when the first present profile's secret does not match,
// the remaining profiles are not consulted.
func (i *Identity) CredentialProfile() *RoleProfile {
	for _, role := range credentialOrder {
		if profile := i.ProfileFor(role); profile != nil {
			return profile
		}
	}

	return nil
}

// FindLoan returns the first loan whose ID matches, or nil.
func (p *CustomerProfile) FindLoan(loanID string) *Loan {
	for _, loan := range p.Loans {
		if loan.ID == loanID {
			return loan
		}
	}

	return nil
}
