package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type IdentityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	AdminProfile    *AdminProfileModel    `gorm:"foreignKey:IdentityID"`
	EmployeeProfile *EmployeeProfileModel `gorm:"foreignKey:IdentityID"`
	CustomerProfile *CustomerProfileModel `gorm:"foreignKey:IdentityID"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}

// ProfileColumns holds the role profile fields shared by the three
// per-role tables. Each table carries its own unique index on
// document_number, which is what scopes the uniqueness to one role
// population instead of the whole directory.
type ProfileColumns struct {
	SecretHash     string `gorm:"type:varchar(255);not null"`
	Name           string `gorm:"type:varchar(100);not null"`
	LastName       string `gorm:"type:varchar(100);not null"`
	DocumentType   string `gorm:"type:varchar(20);not null"`
	DocumentNumber string `gorm:"type:varchar(50);not null;unique"`
	Cellphone      string `gorm:"type:varchar(30)"`
	Address        string `gorm:"type:varchar(255)"`
	Birthday       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AdminProfileModel mirrors the 'admin_profiles' table. IdentityID references identities.id (UUID).
type AdminProfileModel struct {
	IdentityID uuid.UUID `gorm:"primaryKey"`
	ProfileColumns
}

// TableName explicitly sets the table name for GORM.
func (AdminProfileModel) TableName() string {
	return "admin_profiles"
}

// EmployeeProfileModel mirrors the 'employee_profiles' table. IdentityID references identities.id (UUID).
type EmployeeProfileModel struct {
	IdentityID uuid.UUID `gorm:"primaryKey"`
	ProfileColumns
}

// TableName explicitly sets the table name for GORM.
func (EmployeeProfileModel) TableName() string {
	return "employee_profiles"
}

// CustomerProfileModel mirrors the 'customer_profiles' table. IdentityID references identities.id (UUID).
type CustomerProfileModel struct {
	IdentityID uuid.UUID `gorm:"primaryKey"`
	ProfileColumns

	Loans []*LoanModel `gorm:"foreignKey:CustomerID"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// LoanModel mirrors the 'loans' table. CustomerID references
// customer_profiles.identity_id. The ISBN column is a plain value, not
// a foreign key: deleting a book must not cascade into loan history.
type LoanModel struct {
	ID         string    `gorm:"type:varchar(36);primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ISBN       string    `gorm:"type:varchar(20);not null"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	State      bool      `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LoanModel) TableName() string {
	return "loans"
}
