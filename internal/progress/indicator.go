// Package progress provides progress reporting for long-running operations.
//
// Purpose:
//
//	Report per-file progress while uploading source files, which can take
//	minutes for large GeoJSON inputs. Output goes to stderr so it never
//	corrupts the structured data on stdout; in JSON mode progress becomes
//	one event per line, suitable for CI logs.
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Indicator displays progress for long-running operations.
type Indicator struct {
	writer  io.Writer
	format  string // table, json
	enabled bool
}

// NewIndicator creates a progress indicator. A nil writer defaults to
// stderr.
func NewIndicator(w io.Writer, format string, enabled bool) *Indicator {
	if w == nil {
		w = os.Stderr
	}
	return &Indicator{writer: w, format: format, enabled: enabled}
}

// Event is one progress event.
type Event struct {
	Timestamp       string  `json:"timestamp"`
	Operation       string  `json:"operation"`
	PercentComplete float64 `json:"percent_complete"`
	ItemsProcessed  int     `json:"items_processed,omitempty"`
	TotalItems      int     `json:"total_items,omitempty"`
	Elapsed         string  `json:"elapsed"`
}

// Update reports progress after an item completes.
func (p *Indicator) Update(op string, processed, total int, elapsed time.Duration) {
	if !p.enabled || total == 0 {
		return
	}

	percent := float64(processed) / float64(total) * 100

	if p.format == "json" {
		_ = json.NewEncoder(p.writer).Encode(Event{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			Operation:       op,
			PercentComplete: percent,
			ItemsProcessed:  processed,
			TotalItems:      total,
			Elapsed:         elapsed.String(),
		})
		return
	}

	fmt.Fprintf(p.writer, "\r%s: %.1f%% (%d/%d) [elapsed: %s]",
		op, percent, processed, total, elapsed.Round(time.Second))
}

// Complete reports a finished operation.
func (p *Indicator) Complete(op string, total int, elapsed time.Duration) {
	if !p.enabled {
		return
	}

	if p.format == "json" {
		_ = json.NewEncoder(p.writer).Encode(Event{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			Operation:       op,
			PercentComplete: 100,
			ItemsProcessed:  total,
			TotalItems:      total,
			Elapsed:         elapsed.String(),
		})
		return
	}

	fmt.Fprintf(p.writer, "\r%s: done (%d/%d) in %s\n", op, total, total, elapsed.Round(time.Second))
}
