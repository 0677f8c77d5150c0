package cycle

import (
	"time"

	"cyclerig-go/hal"
	"cyclerig-go/types"
)

// Notification lines sent to the host without request.
const (
	noteCycleStart = "CYCLE START"
	noteCycleEnd   = "CYCLE END"
)

// Outputs groups the rig's three digital outputs.
type Outputs struct {
	Clamp  hal.Pin
	Pulse  hal.Pin
	Result hal.Pin
}

// Observer receives every externally visible transition, for mirroring onto
// the bus or a log. Calls happen from the poll loop and must not block.
type Observer interface {
	ButtonEdge(name string, pressed bool, now time.Time)
	OutputChanged(name string, high bool, now time.Time)
	PhaseChanged(phase Phase, now time.Time)
	Line(dir, text string, now time.Time)
}

type nopObserver struct{}

func (nopObserver) ButtonEdge(string, bool, time.Time)    {}
func (nopObserver) OutputChanged(string, bool, time.Time) {}
func (nopObserver) PhaseChanged(Phase, time.Time)         {}
func (nopObserver) Line(string, string, time.Time)        {}

// Controller is the whole rig state: two debounced buttons, the cycle
// sequencer, the command interpreter and the serial link. One call to Tick
// performs one iteration of the poll loop in fixed order: start button,
// sequencer deadlines, end button, then at most one serial line.
type Controller struct {
	start hal.Pin
	end   hal.Pin
	out   Outputs
	port  hal.Port

	startDeb Debouncer
	endDeb   Debouncer
	seq      Sequencer
	lines    LineBuffer

	obs Observer
}

func NewController(start, end hal.Pin, out Outputs, port hal.Port, obs Observer) *Controller {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Controller{start: start, end: end, out: out, port: port, obs: obs}
}

// Init drives the hardware to the startup state: buttons as plain inputs
// (the board has external pulldowns), all three outputs low.
func (c *Controller) Init() error {
	if err := c.start.ConfigureInput(hal.PullNone); err != nil {
		return err
	}
	if err := c.end.ConfigureInput(hal.PullNone); err != nil {
		return err
	}
	if err := c.out.Clamp.ConfigureOutput(false); err != nil {
		return err
	}
	if err := c.out.Pulse.ConfigureOutput(false); err != nil {
		return err
	}
	return c.out.Result.ConfigureOutput(false)
}

// Phase returns the sequencer phase.
func (c *Controller) Phase() Phase { return c.seq.Phase() }

// Tick runs one poll-loop iteration at the given instant.
func (c *Controller) Tick(now time.Time) {
	// Start button first: a confirmed press may begin a cycle this tick.
	if e := c.startDeb.Sample(c.start.Get(), now); e != EdgeNone {
		c.obs.ButtonEdge(types.ButtonStart, e == EdgeRising, now)
		if e == EdgeRising && c.seq.Trigger(now) {
			c.send(noteCycleStart, now)
			c.setOutput(types.OutClamp, c.out.Clamp, true, now)
			c.obs.PhaseChanged(c.seq.Phase(), now)
		}
	}

	switch c.seq.Tick(now) {
	case ActionPulseHigh:
		c.setOutput(types.OutPulse, c.out.Pulse, true, now)
		c.obs.PhaseChanged(c.seq.Phase(), now)
	case ActionPulseLow:
		c.setOutput(types.OutPulse, c.out.Pulse, false, now)
		c.obs.PhaseChanged(c.seq.Phase(), now)
	}

	// End button: purely informational, independent of the cycle state.
	if e := c.endDeb.Sample(c.end.Get(), now); e != EdgeNone {
		c.obs.ButtonEdge(types.ButtonEnd, e == EdgeRising, now)
		if e == EdgeRising {
			c.send(noteCycleEnd, now)
		}
	}

	c.pollSerial(now)
}

// pollSerial consumes buffered serial bytes until one complete line arrives,
// then stops: at most one line is handled per tick, later ones wait their
// turn in arrival order.
func (c *Controller) pollSerial(now time.Time) {
	for c.port.Buffered() > 0 {
		b, err := c.port.ReadByte()
		if err != nil {
			return
		}
		line, done := c.lines.Feed(b)
		if !done {
			continue
		}
		c.obs.Line(types.DirRX, line, now)
		c.dispatch(ParseCommand(line), now)
		return
	}
}

func (c *Controller) dispatch(cmd Command, now time.Time) {
	switch cmd {
	case CmdDeclamp:
		c.setOutput(types.OutClamp, c.out.Clamp, false, now)
	case CmdOK:
		c.setOutput(types.OutResult, c.out.Result, true, now)
	case CmdFail:
		c.setOutput(types.OutResult, c.out.Result, false, now)
	default:
		return
	}
	c.send(cmd.Ack(), now)
}

func (c *Controller) setOutput(name string, pin hal.Pin, high bool, now time.Time) {
	changed := pin.Get() != high
	pin.Set(high)
	if changed {
		c.obs.OutputChanged(name, high, now)
	}
}

// send writes one notification line to the host. Write errors are dropped:
// loss of the link is outside this loop's responsibility.
func (c *Controller) send(text string, now time.Time) {
	_, _ = c.port.Write([]byte(text + "\n"))
	c.obs.Line(types.DirTX, text, now)
}
