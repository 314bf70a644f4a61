package common

import (
	"encoding/json"
	"time"
)

// LocalDateTime carries timezone-naive wall-clock timestamps, which is
// what punch times are: the time on the wall at the employee's site.
type LocalDateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05"

func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		l.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		// devices occasionally send full RFC3339; accept and drop the zone
		t2, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return err
		}
		t = time.Date(t2.Year(), t2.Month(), t2.Day(), t2.Hour(), t2.Minute(), t2.Second(), 0, time.UTC)
	}
	l.Time = t
	return nil
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	if l.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(l.Format(dateTimeLayout))
}
