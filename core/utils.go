package core

import (
	"strings"
	"time"
)

// Now returns the current UTC time truncated to microseconds, the precision every storage backend keeps.
// Tests may swap it for a fixed clock.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
