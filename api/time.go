package api

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// naiveDateTimeLayout covers timestamps the backend emits without a zone
// offset (Python datetimes serialized as-is).
const naiveDateTimeLayout = "2006-01-02T15:04:05.999999999"

// Date is a calendar date field ("2006-01-02") in a JSON payload.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value, err := unquote(data)
	if err != nil {
		return err
	}
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

// DateTime is a timestamp field that tolerates both RFC 3339 and naive
// (zone-less) encodings.
type DateTime struct {
	time.Time
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	value, err := unquote(data)
	if err != nil {
		return err
	}
	if value == "" {
		dt.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		dt.Time = parsed
		return nil
	}
	parsed, err := time.Parse(naiveDateTimeLayout, value)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	dt.Time = parsed
	return nil
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	if dt.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(dt.Format(time.RFC3339Nano))), nil
}

func unquote(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return "", fmt.Errorf("expected JSON string, got %s", string(data))
	}
	return value, nil
}
