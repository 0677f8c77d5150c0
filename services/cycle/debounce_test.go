package cycle

import (
	"testing"
	"time"
)

var t0 = time.Unix(1000, 0)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestDebouncerCommitsAfterHold(t *testing.T) {
	var d Debouncer

	var rising time.Time
	for ms := 0; ms <= 100; ms++ {
		e := d.Sample(true, at(ms))
		if e == EdgeRising && rising.IsZero() {
			rising = at(ms)
		}
		if e == EdgeFalling {
			t.Fatalf("unexpected falling edge at %dms", ms)
		}
	}
	if rising.IsZero() {
		t.Fatal("no rising edge after 100ms of steady high")
	}
	// The raw change is observed at the first sample (t=0); the commit needs
	// strictly more than 50ms.
	if got := rising.Sub(t0); got != 51*time.Millisecond {
		t.Errorf("rising edge at +%v, want +51ms", got)
	}
	if !d.Stable() {
		t.Error("stable level should be high after commit")
	}
}

func TestDebouncerFallingEdge(t *testing.T) {
	var d Debouncer
	for ms := 0; ms <= 60; ms++ {
		d.Sample(true, at(ms))
	}
	var falling bool
	for ms := 61; ms <= 130; ms++ {
		if d.Sample(false, at(ms)) == EdgeFalling {
			falling = true
		}
	}
	if !falling {
		t.Error("expected a falling edge after steady low")
	}
	if d.Stable() {
		t.Error("stable level should be low again")
	}
}

func TestDebouncerIgnoresBouncing(t *testing.T) {
	var d Debouncer
	// Flip the raw level every 20ms: faster than the window, so the stable
	// level must never change and no edge may fire.
	raw := false
	for ms := 0; ms <= 400; ms++ {
		if ms%20 == 0 {
			raw = !raw
		}
		if e := d.Sample(raw, at(ms)); e != EdgeNone {
			t.Fatalf("edge %v fired at %dms during continuous bouncing", e, ms)
		}
	}
	if d.Stable() {
		t.Error("stable level changed during continuous bouncing")
	}
}

func TestDebouncerBounceRestartsWindow(t *testing.T) {
	var d Debouncer
	// High for 40ms, one-sample glitch low, then high again: the glitch must
	// restart the settle window.
	for ms := 0; ms < 40; ms++ {
		d.Sample(true, at(ms))
	}
	d.Sample(false, at(40))
	var rising time.Time
	for ms := 41; ms <= 120; ms++ {
		if d.Sample(true, at(ms)) == EdgeRising {
			rising = at(ms)
			break
		}
	}
	if rising.IsZero() {
		t.Fatal("no rising edge after glitch settled")
	}
	// Window restarted at the glitch's recovery sample (t=41ms).
	if got := rising.Sub(t0); got != 92*time.Millisecond {
		t.Errorf("rising edge at +%v, want +92ms", got)
	}
}

func TestDebouncerQuietInputNeverFires(t *testing.T) {
	var d Debouncer
	for ms := 0; ms <= 1000; ms += 10 {
		if e := d.Sample(false, at(ms)); e != EdgeNone {
			t.Fatalf("edge %v fired on a permanently low input", e)
		}
	}
	if d.Stable() {
		t.Error("stable level must stay low with no input activity")
	}
}
