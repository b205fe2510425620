package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// layouts accepted by Timestamp, tried in order. The backend emits naive
// ISO-8601 (no zone), which is read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a time.Time that decodes leniently and encodes as RFC3339
// (null when zero).
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t.UTC()} }

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
