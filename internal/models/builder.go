package models

import (
	"strings"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/dateutils"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"

	"github.com/shopspring/decimal"
)

// InstructionBuilder provides a fluent API for constructing instructions.
// The first error sticks: once a step fails, later steps are ignored and Build
// returns that error.
type InstructionBuilder struct {
	ins Instruction
	err error
}

// NewInstructionBuilder creates an empty builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{}
}

// WithDebtor sets the debtor party. Fields are trimmed.
func (b *InstructionBuilder) WithDebtor(p Party) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.Debtor = trimParty(p)
	return b
}

// WithCreditor sets the creditor party. Fields are trimmed.
func (b *InstructionBuilder) WithCreditor(p Party) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.Creditor = trimParty(p)
	return b
}

// WithAmount sets an already parsed amount.
func (b *InstructionBuilder) WithAmount(amount decimal.Decimal) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
	return b
}

// WithAmountString parses raw as an exact decimal. A blank raw leaves the amount
// absent. field names the source column for error reporting.
func (b *InstructionBuilder) WithAmountString(field, raw string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return b
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		b.err = &parsererror.ParseError{
			Field: field,
			Value: raw,
			Kind:  parsererror.ErrMalformedAmount,
			Err:   err,
		}
		return b
	}
	return b.WithAmount(amount)
}

// WithCurrency sets the ISO currency code. No default is applied here.
func (b *InstructionBuilder) WithCurrency(currency string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.Currency = strings.TrimSpace(currency)
	return b
}

// WithExecutionDate sets the requested execution date.
func (b *InstructionBuilder) WithExecutionDate(date time.Time) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.ExecutionDate = NewNullDate(date)
	return b
}

// WithExecutionDateString parses raw as YYYY-MM-DD. A blank raw leaves the date
// absent.
func (b *InstructionBuilder) WithExecutionDateString(field, raw string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return b
	}
	date, err := dateutils.ParseISODate(raw)
	if err != nil {
		b.err = &parsererror.ParseError{
			Field: field,
			Value: raw,
			Kind:  parsererror.ErrMalformedDate,
			Err:   err,
		}
		return b
	}
	return b.WithExecutionDate(date)
}

// WithEndToEndID sets the end-to-end identifier.
func (b *InstructionBuilder) WithEndToEndID(id string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.EndToEndID = strings.TrimSpace(id)
	return b
}

// WithInstructionID sets the instruction identifier.
func (b *InstructionBuilder) WithInstructionID(id string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.InstructionID = strings.TrimSpace(id)
	return b
}

// WithRemittance sets the unstructured and structured remittance texts.
func (b *InstructionBuilder) WithRemittance(unstructured, structured string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.RemittanceUnstructured = strings.TrimSpace(unstructured)
	b.ins.RemittanceStructured = strings.TrimSpace(structured)
	return b
}

// WithClassification sets the purpose, category purpose and charge bearer codes.
func (b *InstructionBuilder) WithClassification(purpose, categoryPurpose, chargeBearer string) *InstructionBuilder {
	if b.err != nil {
		return b
	}
	b.ins.PurposeCode = strings.TrimSpace(purpose)
	b.ins.CategoryPurposeCode = strings.TrimSpace(categoryPurpose)
	b.ins.ChargeBearer = strings.TrimSpace(chargeBearer)
	return b
}

// Build returns the instruction or the first error recorded.
func (b *InstructionBuilder) Build() (Instruction, error) {
	if b.err != nil {
		return Instruction{}, b.err
	}
	return b.ins, nil
}

func trimParty(p Party) Party {
	return Party{
		Name:         strings.TrimSpace(p.Name),
		IBAN:         strings.TrimSpace(p.IBAN),
		OtherID:      strings.TrimSpace(p.OtherID),
		BIC:          strings.TrimSpace(p.BIC),
		AddressLine1: strings.TrimSpace(p.AddressLine1),
		AddressLine2: strings.TrimSpace(p.AddressLine2),
		Country:      strings.TrimSpace(p.Country),
	}
}
