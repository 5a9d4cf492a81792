// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1, want: math.MaxInt16},
		{name: "max negative", input: -1, want: -math.MaxInt16},
		{name: "half", input: 0.5, want: 16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			if diff := math.Abs(float64(got) - float64(tt.want)); diff > 1 {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Fatalf("not monotonic at %v: %v < %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestPowerToDB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		power float64
		want  float64
	}{
		{power: 1, want: 0},
		{power: 10, want: 10},
		{power: 0.01, want: -20},
		{power: 0, want: -100},
		{power: -5, want: -100},
	}

	for _, tt := range tests {
		if got := PowerToDB(tt.power); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PowerToDB(%v) = %v, want %v", tt.power, got, tt.want)
		}
	}
}

func TestDBToPower_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, db := range []float64{-60, -3, 0, 6, 78.3} {
		if got := PowerToDB(DBToPower(db)); math.Abs(got-db) > 1e-9 {
			t.Errorf("PowerToDB(DBToPower(%v)) = %v", db, got)
		}
	}
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float32ToInt16 allocated %v times, want 0", allocs)
	}
}
