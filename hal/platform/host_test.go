//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"testing"

	"cyclerig-go/errcode"
	"cyclerig-go/types"
)

func newTestRegistry() *Registry {
	return NewRegistry(context.Background(), types.UARTPlan{ID: "uart0"})
}

func TestClaimPinConflicts(t *testing.T) {
	r := newTestRegistry()

	if _, err := r.ClaimPin("a", 5); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := r.ClaimPin("b", 5); errcode.Of(err) != errcode.PinInUse {
		t.Errorf("second owner got %v, want pin_in_use", err)
	}
	// Re-claim by the same owner is fine and returns the same pin.
	p1, _ := r.ClaimPin("a", 5)
	p2, _ := r.Pin(5)
	if p1 != p2 {
		t.Error("re-claim returned a different pin")
	}

	r.ReleasePin("a", 5)
	if _, err := r.ClaimPin("b", 5); err != nil {
		t.Errorf("claim after release: %v", err)
	}
}

func TestClaimPinRejectsNegative(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.ClaimPin("a", -1); errcode.Of(err) != errcode.UnknownPin {
		t.Errorf("got %v, want unknown_pin", err)
	}
}

func TestClaimPortConflicts(t *testing.T) {
	r := newTestRegistry()

	if _, err := r.ClaimPort("a", "uart0"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := r.ClaimPort("b", "uart0"); errcode.Of(err) != errcode.PortInUse {
		t.Errorf("second owner got %v, want port_in_use", err)
	}
	if _, err := r.ClaimPort("a", "uart9"); errcode.Of(err) != errcode.UnknownPort {
		t.Errorf("unknown id got %v, want unknown_port", err)
	}

	r.ReleasePort("a", "uart0")
	if _, err := r.ClaimPort("b", "uart0"); err != nil {
		t.Errorf("claim after release: %v", err)
	}
}

func TestFakePortRoundTrip(t *testing.T) {
	r := newTestRegistry()
	p, err := r.ClaimPort("a", "uart0")
	if err != nil {
		t.Fatal(err)
	}
	fake, _ := r.Port("uart0")

	fake.PushRX([]byte("OK\n"))
	if p.Buffered() != 3 {
		t.Errorf("buffered = %d, want 3", p.Buffered())
	}
	for _, want := range []byte("OK\n") {
		b, err := p.ReadByte()
		if err != nil || b != want {
			t.Fatalf("ReadByte = %q, %v; want %q", b, err, want)
		}
	}
	if _, err := p.ReadByte(); err == nil {
		t.Error("ReadByte on empty queue must fail")
	}

	if _, err := p.Write([]byte("CYCLE START\n")); err != nil {
		t.Fatal(err)
	}
	if got := string(fake.TakeTX()); got != "CYCLE START\n" {
		t.Errorf("TakeTX = %q", got)
	}
}
