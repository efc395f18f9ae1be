package domain

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format of a result's time.
const TimeLayout = "2006-01-02 15:04:05"

type Result struct {
	ID      int64     `db:"id"`
	Value   int64     `db:"result"`
	UserID  int64     `db:"user_id"`
	Time    time.Time `db:"time"`
	Version int64     `db:"version"`

	// Owner is the owner's email, filled in by reads.
	Owner string `db:"owner_email"`
}

// NewResult builds an unsaved result. A zero t means now.
func NewResult(value int64, owner *User, t time.Time) *Result {
	if t.IsZero() {
		t = time.Now()
	}
	return &Result{
		Value:   value,
		UserID:  owner.ID,
		Owner:   owner.Email,
		Time:    t.UTC().Truncate(time.Second),
		Version: 1,
	}
}

// ParseTime parses a time in TimeLayout, interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected format YYYY-MM-DD HH:MM:SS", s)
	}
	return t, nil
}

// FormattedTime renders Time in TimeLayout.
func (r *Result) FormattedTime() string {
	return r.Time.UTC().Format(TimeLayout)
}
