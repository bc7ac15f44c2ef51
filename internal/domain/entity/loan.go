package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoanPeriod is the fixed borrowing window. Every loan closes for return
// exactly eight days after it starts; the window is not configurable.
const LoanPeriod = 8 * 24 * time.Hour

// Loan records one borrowing of a book by a customer. It lives embedded
// in the customer profile, never as a top-level record. The ISBN is a
// weak reference: deleting the book does not cascade into loan history.
type Loan struct {
	ID        string    `json:"id"`        // Random token; unique across all loans.
	ISBN      string    `json:"ISBN"`      // Reference to the borrowed catalog book.
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`   // Always StartDate + LoanPeriod.
	State     bool      `json:"state"`     // true while the loan is open, false once returned.
	CreatedAt time.Time `json:"createdAt"`
}

// NewLoan builds an open loan for the given book starting now.
func NewLoan(isbn string, now time.Time) *Loan {
	return &Loan{
		ID:        uuid.NewString(),
		ISBN:      isbn,
		StartDate: now,
		EndDate:   now.Add(LoanPeriod),
		State:     true,
	}
}

// Open reports whether the loan is still active.
func (l *Loan) Open() bool {
	return l.State
}

// Close marks the loan as returned. Closing an already closed loan is a
// no-op; loans never reopen.
func (l *Loan) Close() {
	l.State = false
}
