package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ms converts a time.Time to Unix milliseconds.
func Ms(t time.Time) int64 { return t.UnixMilli() }
