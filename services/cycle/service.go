package cycle

import (
	"context"
	"time"

	"cyclerig-go/bus"
	"cyclerig-go/types"
	"cyclerig-go/x/timex"
)

const defaultTick = time.Millisecond

// Service drives a Controller off a wall-clock ticker and mirrors its
// transitions onto the message bus.
type Service struct {
	ctrl *Controller
	conn *bus.Connection
	tick time.Duration
}

func NewService(ctrl *Controller, conn *bus.Connection, tick time.Duration) *Service {
	if tick <= 0 {
		tick = defaultTick
	}
	return &Service{ctrl: ctrl, conn: conn, tick: tick}
}

// Start initialises the hardware and launches the poll loop.
func (s *Service) Start(ctx context.Context) error {
	if err := s.ctrl.Init(); err != nil {
		return err
	}
	s.publishPhase(PhaseIdle, time.Now())
	go s.loop(ctx)
	return nil
}

func (s *Service) loop(ctx context.Context) {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			println("Info: cycle service stopping")
			return
		case now := <-t.C:
			s.ctrl.Tick(now)
		}
	}
}

func (s *Service) publishPhase(p Phase, now time.Time) {
	s.conn.Publish(s.conn.NewMessage(
		bus.T("cycle", "state"),
		types.CycleStatus{Phase: p.String(), TSms: timex.Ms(now)},
		true,
	))
}

// BusObserver publishes controller transitions on a bus connection. Button
// and line events are fire-and-forget; output levels and the cycle phase are
// retained so late subscribers see current state.
type BusObserver struct {
	Conn *bus.Connection
}

func (o *BusObserver) ButtonEdge(name string, pressed bool, now time.Time) {
	o.Conn.Publish(o.Conn.NewMessage(
		bus.T("io", "button", name, "event"),
		types.ButtonValue{Pressed: pressed, TSms: timex.Ms(now)},
		false,
	))
}

func (o *BusObserver) OutputChanged(name string, high bool, now time.Time) {
	o.Conn.Publish(o.Conn.NewMessage(
		bus.T("io", "output", name, "state"),
		types.OutputValue{Name: name, High: high, TSms: timex.Ms(now)},
		true,
	))
}

func (o *BusObserver) PhaseChanged(phase Phase, now time.Time) {
	o.Conn.Publish(o.Conn.NewMessage(
		bus.T("cycle", "state"),
		types.CycleStatus{Phase: phase.String(), TSms: timex.Ms(now)},
		true,
	))
}

func (o *BusObserver) Line(dir, text string, now time.Time) {
	o.Conn.Publish(o.Conn.NewMessage(
		bus.T("io", "serial", dir),
		types.LineEvent{Dir: dir, Text: text, TSms: timex.Ms(now)},
		false,
	))
}
