// Package pregnancy derives the pregnancy timeline from a due date.
//
// Every function takes the reference instant as a parameter; nothing here
// reads the system clock.
package pregnancy

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// TermDays is the assumed length of a pregnancy, 40 weeks.
	TermDays = 280
	MaxWeek  = 40

	DateLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("invalid date")

type GestationalAge struct {
	Week int `json:"week"`
	Day  int `json:"day"`
}

// CalculateGestationalAge returns completed weeks and days since the assumed
// conception date (due date minus 280 days). Nil due date yields nil.
func CalculateGestationalAge(dueDate *time.Time, now time.Time) *GestationalAge {
	if dueDate == nil {
		return nil
	}

	conception := dueDate.AddDate(0, 0, -TermDays)
	diffDays := int(math.Floor(now.Sub(conception).Hours() / 24))

	if diffDays < 0 {
		return &GestationalAge{Week: 0, Day: 0}
	}
	if diffDays > TermDays {
		return &GestationalAge{Week: MaxWeek, Day: 0}
	}
	return &GestationalAge{Week: diffDays / 7, Day: diffDays % 7}
}

// DaysUntilDue rounds up; a negative result means the due date has passed.
func DaysUntilDue(dueDate *time.Time, now time.Time) *int {
	if dueDate == nil {
		return nil
	}
	days := int(math.Ceil(dueDate.Sub(now).Hours() / 24))
	return &days
}

func Trimester(week int) int {
	if week <= 13 {
		return 1
	}
	if week <= 26 {
		return 2
	}
	return 3
}

// ParseDate accepts YYYY-MM-DD or RFC3339. An empty string is an absent
// date, not an error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

// FormatDate is the inverse of ParseDate for date-only values.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
