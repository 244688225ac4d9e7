package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/models"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstructions(t *testing.T) []models.Instruction {
	t.Helper()
	return []models.Instruction{
		build(t, models.NewInstructionBuilder().
			WithDebtor(models.Party{Name: "John Doe", IBAN: "DE89370400440532013000"}).
			WithCreditor(models.Party{Name: "Jane Smith", IBAN: "GB29NWBK60161331926819", Country: "GB"}).
			WithAmountString("amount", "1000.50").
			WithCurrency("EUR").
			WithExecutionDateString("execution_date", "2025-11-15").
			WithEndToEndID("INV-12345").
			WithRemittance("Payment for Invoice 12345", "")),
		build(t, models.NewInstructionBuilder().
			WithCreditor(models.Party{Name: "Supplier Ltd", OtherID: "ACC-1", BIC: "NWBKGB2L"}).
			WithClassification("SUPP", "CASH", "SLEV")),
	}
}

func TestWriteInstructionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInstructionsCSV(&buf, sampleInstructions(t), ','))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "debtor_name,debtor_iban,debtor_account_other,"))
	assert.Contains(t, lines[1], "John Doe,DE89370400440532013000,")
	assert.Contains(t, lines[1], ",1000.50,EUR,2025-11-15,INV-12345,")
	assert.Contains(t, lines[2], ",SUPP,CASH,SLEV")
}

func TestWriteInstructionsCSV_RoundTripThroughNormalizer(t *testing.T) {
	original := sampleInstructions(t)

	var buf bytes.Buffer
	require.NoError(t, WriteInstructionsCSV(&buf, original, ';'))

	res, err := normalizer.New(normalizer.WithDelimiter(";")).Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, res.Instructions)
}

func TestWriteInstructionsCSV_QuotesSurviveRoundTrip(t *testing.T) {
	original := []models.Instruction{
		build(t, models.NewInstructionBuilder().
			WithCreditor(models.Party{Name: `ACME "Intl" Ltd`}).
			WithAmountString("amount", "42.00").
			WithRemittance(`Invoice "42"`, "")),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInstructionsCSV(&buf, original, ','))
	assert.Contains(t, buf.String(), `,ACME "Intl" Ltd,`)

	res, err := normalizer.New().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, res.Instructions, 1)
	assert.Equal(t, `ACME "Intl" Ltd`, res.Instructions[0].Creditor.Name)
	assert.Equal(t, `Invoice "42"`, res.Instructions[0].RemittanceUnstructured)
	assert.Equal(t, original, res.Instructions)
}

func TestWriteInstructionsCSV_Unrepresentable(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		delimiter rune
	}{
		{name: "comma in value", value: "Smith, Jane", delimiter: ','},
		{name: "semicolon in value", value: "A;B", delimiter: ';'},
		{name: "line break", value: "line1\nline2", delimiter: ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions := []models.Instruction{
				build(t, models.NewInstructionBuilder().WithRemittance(tt.value, "")),
			}
			err := WriteInstructionsCSV(&bytes.Buffer{}, instructions, tt.delimiter)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnrepresentable)
		})
	}

	var buf bytes.Buffer
	ok := []models.Instruction{build(t, models.NewInstructionBuilder().WithRemittance("Smith, Jane", ""))}
	require.NoError(t, WriteInstructionsCSV(&buf, ok, ';'), "a comma is fine under another delimiter")
	assert.Contains(t, buf.String(), ";Smith, Jane;")
}

func TestWriteInstructionsCSV_GocsvReadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInstructionsCSV(&buf, sampleInstructions(t), ','))

	var rows []CanonicalRow
	require.NoError(t, gocsv.Unmarshal(&buf, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, NewCanonicalRow(sampleInstructions(t)[1]), rows[1])
	assert.Equal(t, "ACC-1", rows[1].CreditorAccountOther)
	assert.Equal(t, "", rows[1].Amount)
}

func TestWriteInstructionsToCSV(t *testing.T) {
	logger := logging.NewMockLogger()
	outputPath := filepath.Join(t.TempDir(), "nested", "normalized.csv")

	require.NoError(t, WriteInstructionsToCSV(logger, sampleInstructions(t), outputPath, ','))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Jane Smith")
	assert.True(t, logger.HasEntry("INFO", "Successfully wrote instructions to CSV file"))

	entries := logger.GetEntriesByLevel("INFO")
	require.NotEmpty(t, entries)
	count, ok := entries[0].FieldValue(logging.FieldCount)
	assert.True(t, ok)
	assert.Equal(t, 2, count)
}

func TestWriteInstructionsToCSV_Errors(t *testing.T) {
	logger := logging.NewMockLogger()

	err := WriteInstructionsToCSV(logger, nil, filepath.Join(t.TempDir(), "x.csv"), ',')
	assert.Error(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	err = WriteInstructionsToCSV(logger, sampleInstructions(t), filepath.Join(blocker, "out.csv"), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating CSV file")
}

func build(t *testing.T, b *models.InstructionBuilder) models.Instruction {
	t.Helper()
	ins, err := b.Build()
	require.NoError(t, err)
	return ins
}
