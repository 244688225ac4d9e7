// Package validation checks command-line paths before any work starts.
package validation

import (
	"fmt"
	"os"

	"github.com/C0d3N1nJ4/payment-builder/internal/source"
)

// IsValidInputFile checks that path exists and is a regular file. A missing file
// matches os.ErrNotExist.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s: %w", path, os.ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory, use the batch command", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", path)
	}
	return nil
}

// IsValidPaymentFile is IsValidInputFile plus a supported payment file extension.
func IsValidPaymentFile(path string) error {
	if err := IsValidInputFile(path); err != nil {
		return err
	}
	if _, err := source.DetectFormat(path); err != nil {
		return err
	}
	return nil
}
