// aviation/primitives.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"

	"github.com/roznet/rzflight-sub001/math"
)

///////////////////////////////////////////////////////////////////////////
// Heading

// Heading is a compass heading in integer degrees, always normalized to
// [0,360).
type Heading int

// MakeHeading normalizes the given degrees to [0,360).
func MakeHeading(degrees int) Heading {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return Heading(degrees)
}

// MakeHeadingF rounds the given degrees to the nearest integer heading.
func MakeHeadingF(degrees float32) Heading {
	return MakeHeading(int(math.Round(degrees)))
}

func (h Heading) String() string {
	return fmt.Sprintf("%03d", int(h))
}

func (h Heading) Add(delta int) Heading {
	return MakeHeading(int(h) + delta)
}

func (h Heading) Opposite() Heading {
	return h.Add(180)
}

// Rotate is a synonym for Add; it reads better when the rotation is the
// point of the call.
func (h Heading) Rotate(delta int) Heading {
	return h.Add(delta)
}

// Difference returns the minimum separation between two headings; the
// result is always in [0,180].
func (h Heading) Difference(other Heading) int {
	d := math.Abs(int(other) - int(h))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Direction classifies another heading relative to this one.
type Direction int

const (
	DirectionAhead Direction = iota
	DirectionBehind
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	return [...]string{"ahead", "behind", "left", "right"}[d]
}

// DirectionTo classifies other relative to h: ahead if they are separated
// by less than 90 degrees, behind if by more. Exactly perpendicular
// headings are classified as right or left depending on which rotation
// from h reaches other.
func (h Heading) DirectionTo(other Heading) Direction {
	diff := h.Difference(other)
	switch {
	case diff < 90:
		return DirectionAhead
	case diff > 90:
		return DirectionBehind
	case h.Add(diff) == other:
		return DirectionRight
	default:
		return DirectionLeft
	}
}

// CrossComponent returns the fraction of a wind blowing from other that
// acts perpendicular to h. Exact trigonometric decomposition:
// CrossComponent²+HeadComponent² == 1.
func (h Heading) CrossComponent(other Heading) Percent {
	diff := float32(h.Difference(other))
	return Percent(math.Abs(math.Sin(math.Radians(diff))))
}

// HeadComponent returns the fraction of a wind blowing from other that
// acts along h.
func (h Heading) HeadComponent(other Heading) Percent {
	diff := float32(h.Difference(other))
	return Percent(math.Abs(math.Cos(math.Radians(diff))))
}

// Compass returns the closest named compass direction for the heading.
func (h Heading) Compass() string {
	return math.Compass(float32(h))
}

///////////////////////////////////////////////////////////////////////////
// Speed

// Speed is a non-negative speed in knots.
type Speed int

func MakeSpeed(kts int) Speed {
	return Speed(max(kts, 0))
}

func (s Speed) String() string {
	return fmt.Sprintf("%dkt", int(s))
}

// Increase adds delta knots, clamping at zero.
func (s Speed) Increase(delta int) Speed {
	return MakeSpeed(int(s) + delta)
}

// Capped clamps the speed to [0,maxKts].
func (s Speed) Capped(maxKts Speed) Speed {
	return Speed(math.Clamp(s, 0, maxKts))
}

// Scale returns the speed scaled by the given ratio, rounded to the
// nearest knot.
func (s Speed) Scale(p Percent) Speed {
	return MakeSpeed(int(math.Round(float32(s) * float32(p))))
}

///////////////////////////////////////////////////////////////////////////
// Percent

// Percent is a fractional ratio where 1.0 corresponds to 100%.
type Percent float32

func (p Percent) String() string {
	return fmt.Sprintf("%.0f%%", float32(p)*100)
}
