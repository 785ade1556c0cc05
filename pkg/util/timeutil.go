package util

import "time"

// Clock is the time source behind NowUTC. Tests may replace it.
var Clock = time.Now

// NowUTC returns the current Clock reading in UTC.
func NowUTC() time.Time {
	return Clock().UTC()
}
