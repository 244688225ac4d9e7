package models

import (
	"errors"
	"testing"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstructionBuilder(t *testing.T) {
	builder := NewInstructionBuilder()

	assert.NotNil(t, builder)
	assert.Nil(t, builder.err)

	ins, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, Instruction{}, ins)
}

func TestInstructionBuilder_WithAmountString(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectValid bool
		expectText  string
		expectError bool
	}{
		{name: "PlainDecimal", raw: "1000.50", expectValid: true, expectText: "1000.50"},
		{name: "TrailingZerosKept", raw: "5500.00", expectValid: true, expectText: "5500.00"},
		{name: "Integer", raw: "42", expectValid: true, expectText: "42"},
		{name: "Negative", raw: "-10.5", expectValid: true, expectText: "-10.5"},
		{name: "Padded", raw: "  7.25 ", expectValid: true, expectText: "7.25"},
		{name: "Blank", raw: "   ", expectValid: false, expectText: ""},
		{name: "Letters", raw: "abc", expectError: true},
		{name: "ThousandsSeparator", raw: "1,000.00", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := NewInstructionBuilder().WithAmountString("amount", tt.raw).Build()
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, parsererror.ErrMalformedAmount))

				var pe *parsererror.ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, "amount", pe.Field)
				assert.Equal(t, tt.raw, pe.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, ins.Amount.Valid)
			assert.Equal(t, tt.expectText, ins.AmountText())
		})
	}
}

func TestInstructionBuilder_WithExecutionDateString(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectDate  string
		expectError bool
	}{
		{name: "Valid", raw: "2025-03-15", expectDate: "2025-03-15"},
		{name: "LeapDay", raw: "2024-02-29", expectDate: "2024-02-29"},
		{name: "Blank", raw: "", expectDate: ""},
		{name: "WrongOrder", raw: "15/03/2025", expectError: true},
		{name: "ImpossibleDay", raw: "2025-02-30", expectError: true},
		{name: "NotPadded", raw: "2025-3-5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := NewInstructionBuilder().WithExecutionDateString("execution_date", tt.raw).Build()
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, parsererror.ErrMalformedDate))
				assert.Equal(t, parsererror.CodeMalformedDate, parsererror.CodeOf(err))
				assert.Contains(t, err.Error(), tt.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectDate, ins.ExecutionDate.String())
		})
	}
}

func TestInstructionBuilder_FirstErrorSticks(t *testing.T) {
	builder := NewInstructionBuilder().
		WithAmountString("amount", "bad").
		WithExecutionDateString("execution_date", "also-bad").
		WithCurrency("CHF")

	_, err := builder.Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrMalformedAmount))
	assert.False(t, errors.Is(err, parsererror.ErrMalformedDate))
}

func TestInstructionBuilder_CompleteInstruction(t *testing.T) {
	date := time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local)

	ins, err := NewInstructionBuilder().
		WithDebtor(Party{Name: " Acme Corp ", IBAN: "DE89370400440532013000"}).
		WithCreditor(Party{Name: "Supplier Ltd", OtherID: "ACC-1", BIC: " DEUTDEFF ", Country: "DE"}).
		WithAmount(decimal.RequireFromString("99.90")).
		WithCurrency(" CHF ").
		WithExecutionDate(date).
		WithEndToEndID("E2E-42").
		WithInstructionID("INSTR-7").
		WithRemittance("Invoice 123", "RF18539007547034").
		WithClassification("SUPP", "CASH", "SLEV").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", ins.Debtor.Name)
	assert.Equal(t, "DEUTDEFF", ins.Creditor.BIC)
	assert.Equal(t, "ACC-1", ins.Creditor.AccountID())
	assert.Equal(t, "99.90", ins.AmountText())
	assert.Equal(t, "CHF", ins.Currency)
	assert.Equal(t, "2025-03-15", ins.ExecutionDate.String())
	assert.Equal(t, time.UTC, ins.ExecutionDate.Time.Location())
	assert.Equal(t, "E2E-42", ins.EndToEndID)
	assert.Equal(t, "INSTR-7", ins.InstructionID)
	assert.Equal(t, "Invoice 123", ins.RemittanceUnstructured)
	assert.Equal(t, "RF18539007547034", ins.RemittanceStructured)
	assert.Equal(t, "SUPP", ins.PurposeCode)
	assert.Equal(t, "CASH", ins.CategoryPurposeCode)
	assert.Equal(t, "SLEV", ins.ChargeBearer)
}
