// Package guard throttles destructive CLI operations.
//
// Purpose:
//
//	Refuse a repeated deletion of the same kind within a short window, so a
//	misfiring script cannot wipe an account's tilesets or sources in one
//	run. The guard keeps one small JSON record per operation kind in the
//	user's config directory; the record's timestamp drives the check.
package guard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Guard throttles repeated destructive operations.
type Guard struct {
	dir         string
	minInterval time.Duration
}

// New creates a guard persisting its records in dir.
func New(dir string, minInterval time.Duration) *Guard {
	if minInterval == 0 {
		minInterval = 20 * time.Second
	}
	return &Guard{dir: dir, minInterval: minInterval}
}

// RestrictedError reports a deletion refused by the guard.
type RestrictedError struct {
	Operation string
	Wait      time.Duration
}

func (e *RestrictedError) Error() string {
	return fmt.Sprintf("%s throttled: wait %s before retrying", e.Operation, e.Wait.Round(time.Second))
}

type record struct {
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// Check returns a *RestrictedError when the same operation kind ran within
// the guard interval. A missing or unreadable record means no restriction.
func (g *Guard) Check(operation string) error {
	data, err := os.ReadFile(g.path(operation))
	if err != nil {
		return nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}

	elapsed := time.Since(rec.Timestamp)
	if elapsed < g.minInterval {
		return &RestrictedError{Operation: operation, Wait: g.minInterval - elapsed}
	}
	return nil
}

// Record stores the current time as the operation's last run.
func (g *Guard) Record(operation string) error {
	if err := os.MkdirAll(g.dir, 0o700); err != nil {
		return fmt.Errorf("create guard dir: %w", err)
	}

	data, err := json.Marshal(record{Operation: operation, Timestamp: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(g.path(operation), data, 0o600)
}

func (g *Guard) path(operation string) string {
	return filepath.Join(g.dir, operation+".json")
}
