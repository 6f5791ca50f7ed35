// Package clock provides the wall-clock source used when stamping
// diagnostic events. Tests replace NowFunc to make timestamps
// deterministic.
package clock

import "time"

// NowFunc is the active time source.
var NowFunc = time.Now

// Now returns the current time from the active source.
func Now() time.Time { return NowFunc() }
