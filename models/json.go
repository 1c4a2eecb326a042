package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateTime accepts both RFC 3339 timestamps and bare YYYY-MM-DD dates on
// input; it always marshals as RFC 3339.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// StringSlice is a []string stored as a jsonb column.
type StringSlice []string

// Value implements driver.Valuer so GORM can write the slice as jsonb.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the jsonb column back.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringSlice", value)
	}
	return json.Unmarshal(raw, (*[]string)(s))
}
