// Package models provides the data structures shared by the normalizer, the
// message generator and the orchestration layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instruction is one normalized payment instruction (one input row).
//
// String fields are trimmed; "" is the only representation of an absent value
// and a present value is never blank. Amount and ExecutionDate carry an explicit
// Valid flag. An Instruction is built once and not mutated afterwards.
type Instruction struct {
	Debtor   Party
	Creditor Party

	Amount        decimal.NullDecimal
	Currency      string
	ExecutionDate NullDate
	EndToEndID    string
	InstructionID string

	RemittanceUnstructured string
	RemittanceStructured   string

	PurposeCode         string
	CategoryPurposeCode string
	ChargeBearer        string
}

// NullDate is a calendar date that may be absent.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// NewNullDate returns a present date truncated to midnight UTC.
func NewNullDate(t time.Time) NullDate {
	return NullDate{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// String returns the date as YYYY-MM-DD, or "" when absent.
func (d NullDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// AmountText returns the amount as it appears in the input, or "" when absent.
func (i Instruction) AmountText() string {
	if !i.Amount.Valid {
		return ""
	}
	return FormatAmount(i.Amount.Decimal)
}
