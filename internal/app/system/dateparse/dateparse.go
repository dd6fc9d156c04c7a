// Package dateparse parses the date strings accepted by the API.
package dateparse

import (
	"fmt"
	"time"
)

// DateOnly is the short form accepted in query strings and JSON bodies.
const DateOnly = "2006-01-02"

// Parse accepts YYYY-MM-DD or RFC3339. Short-form dates resolve to
// midnight UTC.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
}
