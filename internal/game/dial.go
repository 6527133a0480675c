package game

import (
	"math"
)

const (
	dialHitsToSolve = 3

	dialStartSpeed = 2.5
	dialMaxSpeed   = 6
	dialMinSpeed   = 2
	dialSpeedUp    = 0.7
	dialSlowDown   = 0.3

	dialArcShift = 40
	dialArcWidth = 40
)

// SafeCracker is the dial-timing puzzle: a needle sweeps the dial at a
// constant speed per tick and the player stops it inside the target arc.
// Three hits crack the safe. Each hit moves the arc and speeds the needle
// up (capped); a miss slows it down (floored) without resetting hits.
//
// The needle advances only through Advance, as a pure function of tick
// count, so tests do not depend on wall-clock frame timing.
type SafeCracker struct {
	angle    float64
	speed    float64
	arcStart float64
	arcEnd   float64
	hits     int
	solved   bool
}

func NewSafeCracker() *SafeCracker {
	return &SafeCracker{
		speed:    dialStartSpeed,
		arcStart: 45,
		arcEnd:   95,
	}
}

// Advance moves the needle by n ticks.
func (s *SafeCracker) Advance(n int) {
	if s.solved {
		return
	}
	for i := 0; i < n; i++ {
		s.angle = math.Mod(s.angle+s.speed, 360)
	}
}

// Stop evaluates the needle against the target arc and reports a hit.
// Stops after the safe is cracked are no-ops.
func (s *SafeCracker) Stop() bool {
	if s.solved {
		return false
	}

	if !s.inArc(s.angle) {
		s.speed = math.Max(dialMinSpeed, s.speed-dialSlowDown)
		return false
	}

	s.hits++
	if s.hits >= dialHitsToSolve {
		s.solved = true
		return true
	}

	s.arcStart = math.Mod(s.arcStart+dialArcShift, 360)
	s.arcEnd = math.Mod(s.arcStart+dialArcWidth, 360)
	s.speed = math.Min(dialMaxSpeed, s.speed+dialSpeedUp)
	return true
}

// inArc handles arcs that wrap past 360.
func (s *SafeCracker) inArc(a float64) bool {
	if s.arcStart <= s.arcEnd {
		return a >= s.arcStart && a <= s.arcEnd
	}
	return a >= s.arcStart || a <= s.arcEnd
}

func (s *SafeCracker) Angle() float64 { return s.angle }

func (s *SafeCracker) Speed() float64 { return s.speed }

func (s *SafeCracker) Hits() int { return s.hits }

// Arc returns the current target arc in degrees.
func (s *SafeCracker) Arc() (start, end float64) { return s.arcStart, s.arcEnd }

func (s *SafeCracker) Solved() bool { return s.solved }
