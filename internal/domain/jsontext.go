package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSON-encoded text column.
// A NULL or empty column scans to an empty list; marshaling a nil list
// produces "[]" so the wire format never contains null.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSONList(src, l)
}

// MarshalJSON renders a nil list as [].
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// IntList is a []int stored as a JSON-encoded text column.
type IntList []int

// Value implements driver.Valuer.
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *IntList) Scan(src any) error {
	return scanJSONList(src, l)
}

// MarshalJSON renders a nil list as [].
func (l IntList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}

// scanJSONList decodes a JSON text column into dst. Legacy rows may hold
// NULL, an empty string, or malformed text; those scan to the zero value
// instead of failing the whole row.
func scanJSONList(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported column type %T for JSON list", src)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// Tolerate pre-migration plain-text values.
		return nil
	}
	return nil
}
