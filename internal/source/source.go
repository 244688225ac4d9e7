// Package source reads payment input files into the shapes the normalizer
// accepts: raw text lines for delimited files and pre-split rows for
// spreadsheets.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Format is the kind of input file.
type Format string

const (
	FormatDelimited   Format = "delimited"
	FormatSpreadsheet Format = "spreadsheet"
)

const (
	maxLineLength = 1024 * 1024
	utf8BOM       = "\uFEFF"
)

var formatsByExtension = map[string]Format{
	".csv":  FormatDelimited,
	".txt":  FormatDelimited,
	".xlsx": FormatSpreadsheet,
}

// DetectFormat returns the input format for path based on its extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExtension[ext]; ok {
		return f, nil
	}
	return "", &parsererror.InvalidFormatError{
		FilePath:       path,
		ExpectedFormat: ".csv, .txt or .xlsx",
		Msg:            fmt.Sprintf("unsupported extension %q", ext),
	}
}

// ReadLines splits r into lines, dropping \r before \n. A leading UTF-8 byte
// order mark is removed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// ReadSpreadsheet reads the first sheet of an .xlsx workbook. The first row is
// the header; rows whose cells are all blank are skipped. Line numbers are
// 1-based sheet row numbers. An empty sheet yields a nil header.
func ReadSpreadsheet(r io.Reader) (header []string, rows []normalizer.Row, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close Excel file: %w", cerr))
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	all, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	header = all[0]
	if header == nil {
		header = []string{}
	}
	for i, cells := range all[1:] {
		if blankRow(cells) {
			continue
		}
		rows = append(rows, normalizer.Row{Line: i + 2, Cells: cells})
	}
	return header, rows, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Normalize reads the file at path in its detected format and runs it through n.
func Normalize(n *normalizer.Normalizer, path string) (*normalizer.Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return NormalizeBytes(n, format, data)
}

// NormalizeBytes runs already loaded file content of the given format through n.
func NormalizeBytes(n *normalizer.Normalizer, format Format, data []byte) (*normalizer.Result, error) {
	switch format {
	case FormatSpreadsheet:
		header, rows, err := ReadSpreadsheet(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return n.ParseRows(header, rows)
	default:
		lines, err := ReadLines(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return n.ParseLines(lines)
	}
}
