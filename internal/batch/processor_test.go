package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"
	"github.com/C0d3N1nJ4/payment-builder/internal/pain013"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validCSV = `debtor_name,debtor_iban,creditor_name,creditor_iban,amount,currency,execution_date,end_to_end_id,remittance_info
John Doe,DE89370400440532013000,Jane Smith,GB29NWBK60161331926819,1000.50,EUR,2025-11-15,INV-12345,Payment for Invoice 12345
Acme Corp,FR1420041010050500013M02606,Supplier Ltd,NL91ABNA0417164300,5500.00,,2025-11-20,INV-67890,Payment for Invoice 67890
`

func fixedGenerator() *pain013.Generator {
	return pain013.NewGenerator(
		pain013.WithIDSource(func() string { return "FIXED000" }),
		pain013.WithClock(func() time.Time { return time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC) }),
	)
}

func newTestProcessor(logger logging.Logger, opts ...Option) *Processor {
	return NewProcessor(logger, normalizer.New(), fixedGenerator(), opts...)
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestProcessFile_GeneratesMessage(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "payments.csv", validCSV)
	output := filepath.Join(dir, "out", "payments_pain013.xml")
	logger := logging.NewMockLogger()

	result, err := newTestProcessor(logger).ProcessFile(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, StatusGenerated, result.Status)
	assert.Equal(t, 2, result.Transactions)
	assert.Equal(t, output, result.OutputFile)
	assert.Equal(t, "2025-11-15_2025-11-20", result.ExecutionDates.String())
	assert.Equal(t, map[string]string{"EUR": "6500.50"}, result.Totals)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	xml := string(data)
	assert.Contains(t, xml, "<EndToEndId>INV-12345</EndToEndId>")
	assert.Contains(t, xml, `<InstdAmt Ccy="EUR">1000.50</InstdAmt>`)
	assert.Contains(t, xml, `<InstdAmt Ccy="EUR">5500.00</InstdAmt>`)
	assert.Contains(t, xml, "<MsgId>MSG-FIXED000</MsgId>")
	assert.True(t, strings.HasSuffix(xml, "</Document>"))

	summary, err := pain013.Inspect(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NoError(t, summary.Check())

	assert.True(t, logger.HasEntry("INFO", "Generated payment message"))
}

func TestProcessFile_EmptyFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "header_only.csv", "debtor_name,amount\n\n")
	output := filepath.Join(dir, "header_only_pain013.xml")
	logger := logging.NewMockLogger()

	result, err := newTestProcessor(logger).ProcessFile(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, result.Status)
	assert.True(t, result.Succeeded())
	assert.NoFileExists(t, output)
	assert.True(t, logger.HasEntry("WARN", "No records found in file"))
}

func TestProcessFile_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bad.csv", "debtor_name,amount\nA,1.00\nB,abc\n")
	output := filepath.Join(dir, "bad_pain013.xml")
	logger := logging.NewMockLogger()

	result, err := newTestProcessor(logger).ProcessFile(context.Background(), input, output)
	require.Error(t, err)

	var fileErr *parsererror.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, input, fileErr.FilePath)

	var lineErr *parsererror.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 3, lineErr.Line)
	assert.True(t, errors.Is(err, parsererror.ErrMalformedAmount))

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Error, "line 3")
	assert.Equal(t, parsererror.CodeMalformedAmount, result.ErrorCode)
	assert.NoFileExists(t, output)

	errs := logger.GetEntriesByLevel("ERROR")
	require.Len(t, errs, 1)
	code, ok := errs[0].FieldValue(logging.FieldErrorCode)
	assert.True(t, ok)
	assert.Equal(t, parsererror.CodeMalformedAmount, code)
}

func TestProcessFile_LogsResolvedColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "aliases.csv", "Payee_Name,Payment_Amount,CCY\nJane,10.50,CHF\n")
	logger := logging.NewMockLogger()

	_, err := newTestProcessor(logger).ProcessFile(context.Background(), input, filepath.Join(dir, "out.xml"))
	require.NoError(t, err)

	debug := logger.GetEntriesByLevel("DEBUG")
	require.NotEmpty(t, debug)
	assert.Equal(t, "Resolved header columns", debug[0].Message)
	columns, ok := debug[0].FieldValue(logging.FieldColumns)
	require.True(t, ok)
	assert.Equal(t, map[normalizer.Field]string{
		normalizer.CreditorName: "payee_name",
		normalizer.Amount:       "payment_amount",
		normalizer.Currency:     "ccy",
	}, columns)
}

func TestProcessFile_SkipPolicyRecordsLines(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "mixed.csv", "debtor_name,amount\nA,1.00\nB,abc\nC,2.00\n")
	output := filepath.Join(dir, "mixed_pain013.xml")
	logger := logging.NewMockLogger()

	p := NewProcessor(logger, normalizer.New(normalizer.WithPolicy(normalizer.PolicySkipInvalid)), fixedGenerator())
	result, err := p.ProcessFile(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Transactions)
	assert.Equal(t, []int{3}, result.SkippedLines)
	assert.Equal(t, "3.00", result.Totals["EUR"])

	warns := logger.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	line, ok := warns[0].FieldValue(logging.FieldLine)
	assert.True(t, ok)
	assert.Equal(t, 3, line)
	value, ok := warns[0].FieldValue(logging.FieldValue)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
	code, ok := warns[0].FieldValue(logging.FieldErrorCode)
	assert.True(t, ok)
	assert.Equal(t, parsererror.CodeMalformedAmount, code)
}

func TestProcessFile_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "payments.csv", validCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProcessor(logging.NewMockLogger()).ProcessFile(ctx, input, filepath.Join(dir, "x.xml"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProcessDirectory_IsolatesFailures(t *testing.T) {
	inDir := filepath.Join(t.TempDir(), "input")
	outDir := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.MkdirAll(inDir, 0750))

	writeInput(t, inDir, "a_good.csv", validCSV)
	writeInput(t, inDir, "b_bad.csv", "amount\nnot-a-number\n")
	writeInput(t, inDir, "c_empty.CSV", "amount\n")
	writeInput(t, inDir, "d_empty_file.csv", "")
	writeInput(t, inDir, "notes.txt", validCSV)

	logger := logging.NewMockLogger()
	report, err := newTestProcessor(logger, WithWorkers(3)).ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)

	require.Len(t, report.Files, 4)
	assert.Equal(t, 4, report.FilesFound)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 3, report.Workers)

	assert.Equal(t, filepath.Join(inDir, "a_good.csv"), report.Files[0].InputFile)
	assert.Equal(t, StatusGenerated, report.Files[0].Status)
	assert.Equal(t, StatusFailed, report.Files[1].Status)
	assert.Equal(t, StatusEmpty, report.Files[2].Status)
	assert.Equal(t, StatusFailed, report.Files[3].Status)
	assert.True(t, errors.Is(report.Files[3].Err, parsererror.ErrEmptyInput))

	assert.FileExists(t, filepath.Join(outDir, "a_good_pain013.xml"))
	assert.NoFileExists(t, filepath.Join(outDir, "b_bad_pain013.xml"))
	assert.NoFileExists(t, filepath.Join(outDir, "c_empty_pain013.xml"))

	joined := report.Err()
	require.Error(t, joined)
	assert.True(t, errors.Is(joined, parsererror.ErrMalformedAmount))
}

func TestProcessDirectory_CreatesDirectories(t *testing.T) {
	base := t.TempDir()
	inDir := filepath.Join(base, "missing", "in")
	outDir := filepath.Join(base, "missing", "out")

	report, err := newTestProcessor(logging.NewMockLogger()).ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)
	assert.DirExists(t, inDir)
	assert.DirExists(t, outDir)
	assert.Zero(t, report.FilesFound)
	assert.NoError(t, report.Err())
}

func TestProcessDirectory_Extensions(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "one.csv", validCSV)
	writeInput(t, inDir, "two.txt", validCSV)

	p := newTestProcessor(logging.NewMockLogger(), WithExtensions(".csv", ".txt"), WithOutputSuffix(".xml"))
	report, err := p.ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.FileExists(t, filepath.Join(outDir, "one.xml"))
	assert.FileExists(t, filepath.Join(outDir, "two.xml"))
}

func TestProcessDirectory_OutputConflict(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "march.csv", validCSV)
	writeInput(t, inDir, "march.txt", "creditor_name,amount\nOther,1.00\n")

	logger := logging.NewMockLogger()
	p := newTestProcessor(logger, WithExtensions(".csv", ".txt"), WithWorkers(2))
	report, err := p.ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Failed)

	assert.Equal(t, StatusGenerated, report.Files[0].Status)
	assert.Equal(t, 2, report.Files[0].Transactions)

	conflict := report.Files[1]
	assert.Equal(t, filepath.Join(inDir, "march.txt"), conflict.InputFile)
	assert.Equal(t, StatusFailed, conflict.Status)
	assert.True(t, errors.Is(conflict.Err, ErrOutputConflict))
	assert.Contains(t, conflict.Error, "march_pain013.xml is written from march.csv")
	assert.True(t, logger.HasEntry("ERROR", "Error processing file"))

	data, err := os.ReadFile(filepath.Join(outDir, "march_pain013.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<NbOfTxs>2</NbOfTxs>")
	assert.NotContains(t, string(data), "Other")
}

func TestProcessDirectory_ManyFilesKeepOrder(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	names := []string{"f00.csv", "f01.csv", "f02.csv", "f03.csv", "f04.csv", "f05.csv", "f06.csv", "f07.csv"}
	for _, n := range names {
		writeInput(t, inDir, n, validCSV)
	}

	report, err := newTestProcessor(logging.NewMockLogger(), WithWorkers(4)).ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)
	require.Len(t, report.Files, len(names))
	for i, n := range names {
		assert.Equal(t, filepath.Join(inDir, n), report.Files[i].InputFile)
		assert.Equal(t, StatusGenerated, report.Files[i].Status)
	}
}

func TestProcessDirectory_Cancelled(t *testing.T) {
	inDir := t.TempDir()
	writeInput(t, inDir, "a.csv", validCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestProcessor(logging.NewMockLogger()).ProcessDirectory(ctx, inDir, t.TempDir())
	assert.True(t, errors.Is(err, context.Canceled))
	require.Len(t, report.Files, 1)
	assert.Equal(t, StatusFailed, report.Files[0].Status)
}

func TestNewProcessorDefaults(t *testing.T) {
	p := newTestProcessor(logging.NewMockLogger(), WithWorkers(0), WithExtensions(), WithOutputSuffix(""))
	assert.GreaterOrEqual(t, p.Workers(), 1)
	assert.Equal(t, filepath.Join("out", "pay_pain013.xml"), p.OutputPathFor("in/pay.csv", "out"))
}

func TestReportYAML(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "a.csv", validCSV)
	writeInput(t, inDir, "b.csv", "amount\nx\n")

	report, err := newTestProcessor(logging.NewMockLogger(), WithWorkers(1)).ProcessDirectory(context.Background(), inDir, outDir)
	require.NoError(t, err)

	reportPath := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, report.Save(reportPath))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["processed"])
	assert.Equal(t, 1, decoded["failed"])

	text := string(data)
	assert.Contains(t, text, "execution_dates: 2025-11-15_2025-11-20")
	assert.Contains(t, text, "status: generated")
	assert.Contains(t, text, "status: failed")
	assert.Contains(t, text, "EUR: \"6500.50\"")
	assert.NotContains(t, text, "duration_ms")
}
