package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a time of day in "HH:MM" format.
// It is stored as TIME in postgres and compared lexicographically,
// which is safe because the format is zero-padded.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, keeping only hours and minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Validate checks that the value is a valid "HH:MM" time.
func (t TimeString) Validate() error {
	h, m, err := t.parts()
	if err != nil {
		return err
	}
	if h < 0 || h > 23 {
		return fmt.Errorf("invalid time string format: hour out of range in %q", string(t))
	}
	if m < 0 || m > 59 {
		return fmt.Errorf("invalid time string format: minute out of range in %q", string(t))
	}
	return nil
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes returns a new TimeString shifted forward by the given number of minutes.
// The result is clamped to the same day: shifting past midnight is an error,
// because slots never cross a day boundary.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	h, m, err := t.parts()
	if err != nil {
		return "", err
	}

	total := h*60 + m + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("time %q shifted by %d minutes leaves the day", string(t), minutes)
	}
	// 24:00 is allowed as an exclusive end bound
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MinutesUntil returns the number of minutes from t to other.
// Negative if other is earlier than t.
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	h1, m1, err := t.parts()
	if err != nil {
		return 0, err
	}
	h2, m2, err := other.parts()
	if err != nil {
		return 0, err
	}
	return (h2*60 + m2) - (h1*60 + m1), nil
}

func (t TimeString) parts() (int, int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	return h, m, nil
}
