package output

import (
	"encoding/json"
	"io"
	"os"
)

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Write outputs data as indented JSON, the way the Mapbox tooling prints
// API responses.
func (j *JSONFormatter) Write(data interface{}) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintJSON is a convenience function to print JSON output to stdout.
func PrintJSON(data interface{}) error {
	return NewJSONFormatter(os.Stdout).Write(data)
}
