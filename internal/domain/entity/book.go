package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a catalog record with its inventory count. ISBN uniqueness is
// an application-level invariant checked at registration time.
type Book struct {
	ID          uuid.UUID       `json:"_id"`
	ISBN        string          `json:"ISBN"`
	Name        string          `json:"name"`
	Author      string          `json:"author"`
	Genre       string          `json:"genre"`
	Copies      int             `json:"copies"` // Remaining copies; decremented when a loan is registered.
	Publication time.Time       `json:"publication"`
	Fine        decimal.Decimal `json:"fine"` // Daily late fee, non-negative.
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
