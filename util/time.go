// util/time.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import "time"

// TimeInterval is a half-open time interval [start, end).
type TimeInterval [2]time.Time

func (t TimeInterval) Contains(tm time.Time) bool {
	return !tm.Before(t[0]) && tm.Before(t[1])
}

func (t TimeInterval) Duration() time.Duration {
	return t[1].Sub(t[0])
}
