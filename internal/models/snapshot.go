package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Snapshot is an opaque before/after state blob attached to activity
// entries. The storage layer persists it as JSON text and never interprets
// the contents.
type Snapshot map[string]any

func (s Snapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into Snapshot", src)
	}
}
