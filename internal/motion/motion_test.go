package motion

import (
	"math"
	"testing"
)

func TestWrapStaysInRange(t *testing.T) {
	cases := []struct {
		x, m float64
	}{
		{0, 100},
		{50, 100},
		{100, 100},
		{250, 100},
		{-1, 100},
		{-100, 100},
		{-250.5, 100},
		{1e9 + 0.25, 333},
		{-1e9, 333},
	}
	for _, c := range cases {
		got := Wrap(c.x, c.m)
		if got < 0 || got >= c.m {
			t.Fatalf("Wrap(%v, %v) = %v, want in [0, %v)", c.x, c.m, got, c.m)
		}
	}
}

func TestWrapExactMultiple(t *testing.T) {
	if got := Wrap(300, 100); got != 0 {
		t.Fatalf("Wrap(300, 100) = %v, want 0", got)
	}
	if got := Wrap(-300, 100); got != 0 {
		t.Fatalf("Wrap(-300, 100) = %v, want 0", got)
	}
}

func TestWrapNegative(t *testing.T) {
	if got := Wrap(-30, 100); math.Abs(got-70) > 1e-9 {
		t.Fatalf("Wrap(-30, 100) = %v, want 70", got)
	}
}

func TestEaseScaleEndpoints(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
	}
	for _, c := range cases {
		if got := EaseScale(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("EaseScale(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEaseScaleMonotoneAndContinuous(t *testing.T) {
	const steps = 1000
	prev := EaseScale(0)
	for i := 1; i <= steps; i++ {
		u := float64(i) / steps
		cur := EaseScale(u)
		if cur < prev {
			t.Fatalf("EaseScale not monotone at t=%v: %v < %v", u, cur, prev)
		}
		if cur-prev > 0.01 {
			t.Fatalf("EaseScale jumps at t=%v: step %v", u, cur-prev)
		}
		prev = cur
	}
}

func TestStepAtRestIsIdempotent(t *testing.T) {
	s := State{Position: 1234.5, SmoothPosition: 1234.5}
	for i := 0; i < 100; i++ {
		s.Step()
	}
	if s.Position != 1234.5 || s.SmoothPosition != 1234.5 {
		t.Fatalf("state drifted at rest: pos=%v smooth=%v", s.Position, s.SmoothPosition)
	}
}

func TestStepConvergesUnderFriction(t *testing.T) {
	s := State{Velocity: 25}
	// Geometric series limit: v0 / (1 - friction), starting from the
	// first integrated step.
	limit := 25.0 / (1 - Friction)
	prev := s.Position
	for i := 0; i < 500; i++ {
		s.Step()
		if s.Position < prev {
			t.Fatalf("position not monotone under positive velocity at frame %d", i)
		}
		prev = s.Position
	}
	if math.Abs(s.Position-limit) > 1e-6 {
		t.Fatalf("position = %v, want limit %v", s.Position, limit)
	}
	if math.Abs(s.Velocity) > 1e-9 {
		t.Fatalf("velocity should have decayed, got %v", s.Velocity)
	}
}

func TestStepWhileDraggingSkipsIntegration(t *testing.T) {
	s := State{Position: 10, Velocity: 5, Dragging: true}
	s.Step()
	if s.Position != 10 {
		t.Fatalf("drag position moved by integration: %v", s.Position)
	}
	if s.Velocity != 5 {
		t.Fatalf("friction applied during drag: %v", s.Velocity)
	}
}

func TestSmoothPositionClosesFixedFraction(t *testing.T) {
	s := State{Position: 100, SmoothPosition: 0, Dragging: true}
	s.Step()
	want := 100 * LerpSpeed
	if math.Abs(s.SmoothPosition-want) > 1e-9 {
		t.Fatalf("smooth = %v, want %v", s.SmoothPosition, want)
	}
	// Never overshoots, never jumps: repeated steps approach but do not
	// pass the target.
	for i := 0; i < 1000; i++ {
		s.Step()
		if s.SmoothPosition > 100 {
			t.Fatalf("smooth position overshot: %v", s.SmoothPosition)
		}
	}
	if math.Abs(s.SmoothPosition-100) > 1e-3 {
		t.Fatalf("smooth position did not converge: %v", s.SmoothPosition)
	}
}
