// Package common provides shared file output helpers for the commands.
package common

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/C0d3N1nJ4/payment-builder/internal/fileutils"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/models"

	"github.com/gocarina/gocsv"
)

// ErrUnrepresentable is returned when a value contains the delimiter or a line
// break and so cannot be written as a single unquoted cell.
var ErrUnrepresentable = errors.New("value cannot be written as a canonical CSV cell")

// CanonicalRow is one instruction in the canonical column layout. Column names
// are the first header alias of each field and cells are never quoted, so the
// output can be fed back to the normalizer unchanged.
type CanonicalRow struct {
	DebtorName             string `csv:"debtor_name"`
	DebtorIBAN             string `csv:"debtor_iban"`
	DebtorAccountOther     string `csv:"debtor_account_other"`
	DebtorBIC              string `csv:"debtor_bic"`
	DebtorAddressLine1     string `csv:"debtor_address_line1"`
	DebtorAddressLine2     string `csv:"debtor_address_line2"`
	DebtorCountry          string `csv:"debtor_country"`
	CreditorName           string `csv:"creditor_name"`
	CreditorIBAN           string `csv:"creditor_iban"`
	CreditorAccountOther   string `csv:"creditor_account_other"`
	CreditorBIC            string `csv:"creditor_bic"`
	CreditorAddressLine1   string `csv:"creditor_address_line1"`
	CreditorAddressLine2   string `csv:"creditor_address_line2"`
	CreditorCountry        string `csv:"creditor_country"`
	Amount                 string `csv:"amount"`
	Currency               string `csv:"currency"`
	ExecutionDate          string `csv:"execution_date"`
	EndToEndID             string `csv:"end_to_end_id"`
	InstructionID          string `csv:"instruction_id"`
	RemittanceUnstructured string `csv:"remittance_info"`
	RemittanceStructured   string `csv:"remittance_structured"`
	PurposeCode            string `csv:"purpose_code"`
	CategoryPurposeCode    string `csv:"category_purpose_code"`
	ChargeBearer           string `csv:"charge_bearer"`
}

// NewCanonicalRow flattens an instruction. Absent values become empty cells.
func NewCanonicalRow(ins models.Instruction) CanonicalRow {
	return CanonicalRow{
		DebtorName:             ins.Debtor.Name,
		DebtorIBAN:             ins.Debtor.IBAN,
		DebtorAccountOther:     ins.Debtor.OtherID,
		DebtorBIC:              ins.Debtor.BIC,
		DebtorAddressLine1:     ins.Debtor.AddressLine1,
		DebtorAddressLine2:     ins.Debtor.AddressLine2,
		DebtorCountry:          ins.Debtor.Country,
		CreditorName:           ins.Creditor.Name,
		CreditorIBAN:           ins.Creditor.IBAN,
		CreditorAccountOther:   ins.Creditor.OtherID,
		CreditorBIC:            ins.Creditor.BIC,
		CreditorAddressLine1:   ins.Creditor.AddressLine1,
		CreditorAddressLine2:   ins.Creditor.AddressLine2,
		CreditorCountry:        ins.Creditor.Country,
		Amount:                 ins.AmountText(),
		Currency:               ins.Currency,
		ExecutionDate:          ins.ExecutionDate.String(),
		EndToEndID:             ins.EndToEndID,
		InstructionID:          ins.InstructionID,
		RemittanceUnstructured: ins.RemittanceUnstructured,
		RemittanceStructured:   ins.RemittanceStructured,
		PurposeCode:            ins.PurposeCode,
		CategoryPurposeCode:    ins.CategoryPurposeCode,
		ChargeBearer:           ins.ChargeBearer,
	}
}

// WriteInstructionsCSV writes instructions to w in the canonical layout. A value
// containing the delimiter or a line break fails with ErrUnrepresentable.
func WriteInstructionsCSV(w io.Writer, instructions []models.Instruction, delimiter rune) error {
	rows := make([]CanonicalRow, 0, len(instructions))
	for _, ins := range instructions {
		rows = append(rows, NewCanonicalRow(ins))
	}

	if err := gocsv.MarshalCSV(rows, newPlainWriter(w, delimiter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// plainWriter is a gocsv.CSVWriter that joins cells with the delimiter and never
// quotes, matching the normalizer's line splitting.
type plainWriter struct {
	w         *bufio.Writer
	delimiter string
	err       error
}

func newPlainWriter(w io.Writer, delimiter rune) *plainWriter {
	return &plainWriter{w: bufio.NewWriter(w), delimiter: string(delimiter)}
}

func (p *plainWriter) Write(row []string) error {
	if p.err != nil {
		return p.err
	}
	for i, cell := range row {
		if strings.Contains(cell, p.delimiter) || strings.ContainsAny(cell, "\r\n") {
			p.err = fmt.Errorf("%w: %q", ErrUnrepresentable, cell)
			return p.err
		}
		if i > 0 {
			_, p.err = p.w.WriteString(p.delimiter)
		}
		if p.err == nil {
			_, p.err = p.w.WriteString(cell)
		}
	}
	if p.err == nil {
		p.err = p.w.WriteByte('\n')
	}
	return p.err
}

func (p *plainWriter) Flush() {
	if err := p.w.Flush(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *plainWriter) Error() error {
	return p.err
}

// WriteInstructionsToCSV writes instructions to csvFile, creating its directory
// when needed.
func WriteInstructionsToCSV(logger logging.Logger, instructions []models.Instruction, csvFile string, delimiter rune) (err error) {
	if instructions == nil {
		return fmt.Errorf("cannot write nil instructions to CSV")
	}

	logger.WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(instructions)),
	).Info("Writing instructions to CSV file")

	file, err := fileutils.CreateFile(csvFile, models.PermissionOutputFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("error closing CSV file: %w", cerr))
		}
	}()

	if err := WriteInstructionsCSV(file, instructions, delimiter); err != nil {
		return err
	}

	logger.WithField(logging.FieldOutputFile, csvFile).Info("Successfully wrote instructions to CSV file")
	return nil
}
