// Package store provides owner-scoped access to the wellness records.
// Concurrent writers for the same owner are serialized entirely by the
// database's upsert-on-conflict semantics; nothing here holds locks.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// marshalJSON encodes a value for a TEXT column holding JSON.
func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	return string(b), nil
}

// unmarshalJSON decodes a TEXT column holding JSON into dst.
func unmarshalJSON(s string, dst any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
