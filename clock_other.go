//go:build !windows

package mtwist

import "time"

// Tick is a relative timestamp with the highest precision the runtime system offers.
// Ticks are only comparable within one run of a program on one machine.
type Tick = time.Time

// Now returns the current Tick.
func Now() Tick {
	return time.Now()
}

// Elapsed returns the nanoseconds between from and to. It is negative if to is earlier than from.
func Elapsed(from, to Tick) int64 {
	return to.Sub(from).Nanoseconds()
}
