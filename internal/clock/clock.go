package clock

import "time"

// TimestampLayout is the registry upload_date format, always in UTC
const TimestampLayout = "2006-01-02T15:04:05"

// NowFunc is replaced in tests to pin upload dates
var NowFunc = time.Now

// Now returns NowFunc()
func Now() time.Time { return NowFunc() }

// Timestamp returns the current UTC time formatted as a registry upload date
func Timestamp() string {
	return Now().UTC().Format(TimestampLayout)
}
