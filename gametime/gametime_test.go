package gametime

import (
	"testing"
	"time"
)

func TestRoundTripFromWall(t *testing.T) {
	durations := []time.Duration{
		0,
		time.Nanosecond,
		999 * time.Millisecond,
		time.Second,
		time.Second + time.Nanosecond,
		90*time.Minute + 123456789*time.Nanosecond,
		24 * time.Hour,
	}
	for _, d := range durations {
		if got := ToWall(ToInGame(d)); got != d {
			t.Errorf("ToWall(ToInGame(%v)) = %v, want %v", d, got, d)
		}
	}
}

func TestRoundTripFromInGame(t *testing.T) {
	durations := []Duration{
		0,
		1,
		SubunitsPerSecond - 1,
		SubunitsPerSecond,
		SubunitsPerSecond + 1,
		Seconds(3600) + 987654321,
	}
	for _, d := range durations {
		if got := ToInGame(ToWall(d)); got != d {
			t.Errorf("ToInGame(ToWall(%d)) = %d, want %d", d, got, d)
		}
	}
}

func TestToInGameClampsNegative(t *testing.T) {
	if got := ToInGame(-time.Second); got != 0 {
		t.Fatalf("ToInGame(-1s) = %d, want 0", got)
	}
}

func TestToWallClampsNegative(t *testing.T) {
	if got := ToWall(-Seconds(1)); got != 0 {
		t.Fatalf("ToWall(-1s) = %v, want 0", got)
	}
}

func TestTimeArithmetic(t *testing.T) {
	t0 := Time(0).Add(Seconds(10))
	t1 := t0.Add(ToInGame(1500 * time.Millisecond))

	if got := t1.Sub(t0); got != ToInGame(1500*time.Millisecond) {
		t.Fatalf("Sub = %d, want %d", got, ToInGame(1500*time.Millisecond))
	}
	if !t0.Before(t1) || !t1.After(t0) {
		t.Fatalf("ordering: t0=%v t1=%v", t0, t1)
	}
	if got := t1.Seconds(); got != 11.5 {
		t.Fatalf("Seconds() = %v, want 11.5", got)
	}
}
