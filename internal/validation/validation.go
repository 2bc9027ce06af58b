// Package validation provides the ordered check chain the services run
// before any store write, plus the small parsing helpers the checks share.
package validation

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Check is a single rule. Run executes checks in order and stops at the
// first failure, so later checks can assume everything before them passed.
type Check func() error

func Run(checks ...Check) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// Digits strips everything but digits, so "(555) 123-4567" and
// "5551234567" compare equal.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
