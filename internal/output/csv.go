package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVFormatter formats list output as CSV.
type CSVFormatter struct {
	writer *csv.Writer
}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: csv.NewWriter(w)}
}

// WriteHeader writes CSV column headers.
func (c *CSVFormatter) WriteHeader(headers []string) error {
	return c.writer.Write(headers)
}

// WriteRow writes a CSV data row.
func (c *CSVFormatter) WriteRow(row []string) error {
	return c.writer.Write(row)
}

// Flush flushes the CSV writer.
func (c *CSVFormatter) Flush() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// PrintCSV is a convenience function to print CSV output to stdout.
func PrintCSV(headers []string, rows [][]string) error {
	formatter := NewCSVFormatter(os.Stdout)
	if err := formatter.WriteHeader(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := formatter.WriteRow(row); err != nil {
			return err
		}
	}
	return formatter.Flush()
}
