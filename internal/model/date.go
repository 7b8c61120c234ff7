package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date that marshals as "2006-01-02" and accepts a few
// common layouts on input. The zero value marshals as null.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// NewDatePtr wraps an optional stored date for a response view.
func NewDatePtr(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	return &Date{Time: *t}
}

// Ptr returns the underlying time for an optional model field, nil for the
// zero value.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("cannot parse date: %s", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.Time.Format("2006-01-02"))
}

// NullableDate distinguishes an absent update field from an explicit null.
// Set is true when the key appeared in the payload at all; Value is nil when
// the payload carried null, clearing the stored date.
type NullableDate struct {
	Set   bool
	Value *Date
}

func (n *NullableDate) UnmarshalJSON(b []byte) error {
	n.Set = true

	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var d Date
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Value = &d
	return nil
}
