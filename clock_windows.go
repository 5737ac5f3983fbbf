//go:build windows

package mtwist

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Tick is a relative timestamp with the highest precision the runtime system offers,
// a QueryPerformanceCounter value on Windows.
// Ticks are only comparable within one run of a program on one machine.
type Tick = int64

var (
	kernel32    = windows.NewLazySystemDLL("kernel32.dll")
	procFreq    = kernel32.NewProc("QueryPerformanceFrequency")
	procCounter = kernel32.NewProc("QueryPerformanceCounter")

	ticksPerSecond = queryFrequency()
)

func queryFrequency() int64 {
	var freq int64
	r1, _, err := procFreq.Call(uintptr(unsafe.Pointer(&freq)))
	if r1 == 0 {
		panic(fmt.Sprintf("QueryPerformanceFrequency failed: %v", err))
	}
	return freq
}

// Now returns the current Tick.
func Now() Tick {
	var qpc int64
	procCounter.Call(uintptr(unsafe.Pointer(&qpc)))
	return qpc
}

// Elapsed returns the nanoseconds between from and to. It is negative if to is earlier than from.
// The conversion splits whole seconds off first so large tick counts cannot overflow.
func Elapsed(from, to Tick) int64 {
	d := to - from
	sec, rem := d/ticksPerSecond, d%ticksPerSecond
	return sec*1_000_000_000 + rem*1_000_000_000/ticksPerSecond
}
