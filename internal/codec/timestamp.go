package codec

import (
	"time"

	"github.com/benbjohnson/clock"
)

// timestampLayout is the seconds-precision part of the creation timestamp. The
// fraction is always zero, so ".000Z" is appended as a literal.
const timestampLayout = "2006-01-02T15:04:05"

// FormatTimestamp renders t in UTC as yyyy-MM-ddTHH:mm:ss.000Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + ".000Z"
}

// Now formats the current time of c. A nil clock reads the wall clock.
func Now(c clock.Clock) string {
	if c == nil {
		c = clock.New()
	}

	return FormatTimestamp(c.Now())
}
