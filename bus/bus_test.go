// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectOneOf(t *testing.T, s *Subscription, want any) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload != want {
			t.Errorf("expected payload %v, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %v", want)
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Errorf("unexpected message %v", got.Payload)
	default:
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("io", "button", "start"))

	conn.Publish(conn.NewMessage(T("io", "button", "start"), "pressed", false))

	expectOneOf(t, sub, "pressed")
}

func TestNoDeliveryOnOtherTopic(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("io", "button", "start"))
	conn.Publish(conn.NewMessage(T("io", "button", "end"), "pressed", false))

	expectNoMessage(t, sub)
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("cycle", "state"), "idle", true))

	sub := conn.Subscribe(T("cycle", "state"))

	expectOneOf(t, sub, "idle")
}

func TestRetainedCleared(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("cycle", "state"), "idle", true))
	conn.Publish(conn.NewMessage(T("cycle", "state"), nil, true))

	sub := conn.Subscribe(T("cycle", "state"))
	expectNoMessage(t, sub)
}

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a", "+", "c"))
	s2 := c.Subscribe(T("a", "+", "+"))
	s3 := c.Subscribe(T("a", "b", "+"))
	sNo := c.Subscribe(T("a", "+", "d"))

	c.Publish(c.NewMessage(T("a", "b", "c"), "m1", false))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(c.NewMessage(T("a", "x", "y"), "m2", false))

	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)

	c.Publish(c.NewMessage(T("a", "c"), "m3", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sAHash := c.Subscribe(T("a", "#"))
	sHash := c.Subscribe(T("#"))
	sABHash := c.Subscribe(T("a", "b", "#"))
	sAExact := c.Subscribe(T("a"))

	c.Publish(c.NewMessage(T("a"), "p1", false))
	expectOneOf(t, sAHash, "p1")
	expectOneOf(t, sHash, "p1")
	expectOneOf(t, sAExact, "p1")
	expectNoMessage(t, sABHash)

	c.Publish(c.NewMessage(T("a", "b"), "p2", false))
	expectOneOf(t, sAHash, "p2")
	expectOneOf(t, sHash, "p2")
	expectOneOf(t, sABHash, "p2")
	expectNoMessage(t, sAExact)

	c.Publish(c.NewMessage(T("a", "b", "c"), "p3", false))
	expectOneOf(t, sAHash, "p3")
	expectOneOf(t, sHash, "p3")
	expectOneOf(t, sABHash, "p3")
	expectNoMessage(t, sAExact)
}

func TestWildcard_RetainedDelivery(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("io", "output", "clamp", "state"), "high", true))
	c.Publish(c.NewMessage(T("io", "output", "pulse", "state"), "low", true))

	sub := c.Subscribe(T("io", "output", "+", "state"))

	got := map[any]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			got[m.Payload] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained messages")
		}
	}
	if !got["high"] || !got["low"] {
		t.Errorf("expected both retained payloads, got %v", got)
	}
}

func TestQueueFullDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("x"))
	for i := 0; i < 4; i++ {
		c.Publish(c.NewMessage(T("x"), i, false))
	}

	// Oldest messages were dropped; the last two must survive in order.
	expectOneOf(t, sub, 2)
	expectOneOf(t, sub, 3)
	expectNoMessage(t, sub)
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("svc")
	cli := b.NewConnection("cli")

	reqSub := svc.Subscribe(T("svc", "control"))
	repSub := cli.Subscribe(T("cli", "reply"))

	cli.Publish(&Message{Topic: T("svc", "control"), Payload: "ping", ReplyTo: T("cli", "reply")})

	select {
	case req := <-reqSub.Channel():
		svc.Reply(req, "pong")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for request")
	}

	expectOneOf(t, repSub, "pong")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("y"))
	sub.Unsubscribe()

	// Channel is closed; publishing afterwards must not panic.
	c.Publish(c.NewMessage(T("y"), "gone", false))

	if _, ok := <-sub.Channel(); ok {
		t.Error("expected closed channel after unsubscribe")
	}
}

func TestDisconnectClosesAll(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a"))
	s2 := c.Subscribe(T("b"))
	c.Disconnect()

	if _, ok := <-s1.Channel(); ok {
		t.Error("expected s1 closed")
	}
	if _, ok := <-s2.Channel(); ok {
		t.Error("expected s2 closed")
	}
}
