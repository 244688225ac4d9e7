// Package normalizer turns delimited payment records with heterogeneous column
// headers into normalized instructions.
//
// The first line is the header. Each logical field is looked up through an
// ordered list of header aliases; the first alias present in the
// header with a non-blank cell wins. The normalizer performs no I/O beyond
// reading the supplied reader and does not log.
package normalizer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/C0d3N1nJ4/payment-builder/internal/models"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"
)

// DefaultDelimiter separates cells when no delimiter option is given.
const DefaultDelimiter = ","

// Policy selects what happens when a data line fails typed coercion.
type Policy int

const (
	// PolicyStrict fails the whole batch on the first malformed line.
	PolicyStrict Policy = iota
	// PolicySkipInvalid drops malformed lines and reports them in Result.Skipped.
	PolicySkipInvalid
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicySkipInvalid:
		return "skip"
	default:
		return "strict"
	}
}

// ParsePolicy maps a configuration value ("strict" or "skip") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "skip":
		return PolicySkipInvalid, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown parse policy %q: must be strict or skip", s)
	}
}

// Row is one pre-split data record and its 1-based source line number.
type Row struct {
	Line  int
	Cells []string
}

// Result is the outcome of normalizing one batch.
type Result struct {
	Instructions []models.Instruction
	// Skipped holds the lines dropped under PolicySkipInvalid, in input order.
	Skipped []*parsererror.LineError
	// Columns maps each field found in the header to the column it is read from.
	Columns map[Field]string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDelimiter sets the cell separator. An empty delimiter keeps the default.
func WithDelimiter(d string) Option {
	return func(n *Normalizer) {
		if d != "" {
			n.delimiter = d
		}
	}
}

// WithPolicy sets the malformed-line policy.
func WithPolicy(p Policy) Option {
	return func(n *Normalizer) {
		n.policy = p
	}
}

// Normalizer parses batches of delimited records. It holds no per-batch state
// and is safe for concurrent use.
type Normalizer struct {
	delimiter string
	policy    Policy
}

// New creates a Normalizer with the comma delimiter and the strict policy unless
// overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		delimiter: DefaultDelimiter,
		policy:    PolicyStrict,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Delimiter returns the configured cell separator.
func (n *Normalizer) Delimiter() string {
	return n.delimiter
}

// Policy returns the configured malformed-line policy.
func (n *Normalizer) Policy() Policy {
	return n.policy
}

// Parse reads all lines from r and normalizes them. Line terminators \n and
// \r\n are accepted.
func (n *Normalizer) Parse(r io.Reader) (*Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return n.ParseLines(lines)
}

// ParseLines normalizes lines, the first of which is the header. Blank and
// whitespace-only data lines are skipped but still count toward line numbers.
// A header with no data lines yields an empty result. No lines at all yields
// parsererror.ErrEmptyInput.
func (n *Normalizer) ParseLines(lines []string) (*Result, error) {
	if len(lines) == 0 {
		return nil, parsererror.ErrEmptyInput
	}

	header := strings.Split(lines[0], n.delimiter)
	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, Row{
			Line:  i + 2,
			Cells: strings.Split(line, n.delimiter),
		})
	}
	return n.ParseRows(header, rows)
}

// ParseRows normalizes records that are already split into cells, such as
// spreadsheet rows. A nil header yields parsererror.ErrEmptyInput.
func (n *Normalizer) ParseRows(header []string, rows []Row) (*Result, error) {
	if header == nil {
		return nil, parsererror.ErrEmptyInput
	}

	idx := NewHeaderIndex(header)
	res := &Result{
		Instructions: make([]models.Instruction, 0, len(rows)),
		Columns:      idx.Resolved(),
	}
	for _, row := range rows {
		ins, err := idx.Instruction(row.Cells)
		if err != nil {
			lineErr := &parsererror.LineError{Line: row.Line, Err: err}
			if n.policy == PolicyStrict {
				return nil, lineErr
			}
			res.Skipped = append(res.Skipped, lineErr)
			continue
		}
		res.Instructions = append(res.Instructions, ins)
	}
	return res, nil
}

// Instruction maps one data row onto an Instruction.
func (h HeaderIndex) Instruction(row []string) (models.Instruction, error) {
	amount, amountCol := h.lookup(row, Amount)
	date, dateCol := h.lookup(row, ExecutionDate)

	return models.NewInstructionBuilder().
		WithDebtor(h.party(row, debtorFields)).
		WithCreditor(h.party(row, creditorFields)).
		WithAmountString(amountCol, amount).
		WithCurrency(h.Lookup(row, Currency)).
		WithExecutionDateString(dateCol, date).
		WithEndToEndID(h.Lookup(row, EndToEndID)).
		WithInstructionID(h.Lookup(row, InstructionID)).
		WithRemittance(h.Lookup(row, RemittanceUnstructured), h.Lookup(row, RemittanceStructured)).
		WithClassification(
			h.Lookup(row, PurposeCode),
			h.Lookup(row, CategoryPurposeCode),
			h.Lookup(row, ChargeBearer),
		).
		Build()
}

type partyFields struct {
	name, iban, other, bic, addr1, addr2, country Field
}

var (
	debtorFields = partyFields{
		DebtorName, DebtorIBAN, DebtorOtherAccount, DebtorBIC,
		DebtorAddressLine1, DebtorAddressLine2, DebtorCountry,
	}
	creditorFields = partyFields{
		CreditorName, CreditorIBAN, CreditorOtherAccount, CreditorBIC,
		CreditorAddressLine1, CreditorAddressLine2, CreditorCountry,
	}
)

func (h HeaderIndex) party(row []string, f partyFields) models.Party {
	return models.Party{
		Name:         h.Lookup(row, f.name),
		IBAN:         h.Lookup(row, f.iban),
		OtherID:      h.Lookup(row, f.other),
		BIC:          h.Lookup(row, f.bic),
		AddressLine1: h.Lookup(row, f.addr1),
		AddressLine2: h.Lookup(row, f.addr2),
		Country:      h.Lookup(row, f.country),
	}
}
