package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookModel mirrors the 'books' table.
type BookModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ISBN        string          `gorm:"type:varchar(20);unique;not null"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Author      string          `gorm:"type:varchar(255);not null"`
	Genre       string          `gorm:"type:varchar(100)"`
	Copies      int             `gorm:"not null;check:copies >= 0"`
	Publication time.Time
	Fine        decimal.Decimal `gorm:"type:numeric(10,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
