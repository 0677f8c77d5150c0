// Package types holds the payload and plan types shared between services.
package types

// Logical names for the rig's I/O lines, used in bus topics and payloads.
const (
	ButtonStart = "start"
	ButtonEnd   = "end"

	OutClamp  = "clamp"  // latched high at cycle start, cleared by DECLAMP
	OutPulse  = "pulse"  // high for the 500 ms window of each cycle
	OutResult = "result" // high on OK, low on FAIL
)

// Serial line direction tags.
const (
	DirRX = "rx"
	DirTX = "tx"
)

// ButtonValue is the debounced state of one button.
type ButtonValue struct {
	Pressed bool
	TSms    int64
}

// OutputValue is the level of one digital output.
type OutputValue struct {
	Name string
	High bool
	TSms int64
}

// CycleStatus is the sequencer phase, published retained.
type CycleStatus struct {
	Phase string // "idle" | "pre_pulse" | "pulse"
	TSms  int64
}

// LineEvent is one line that crossed the serial link, either direction.
type LineEvent struct {
	Dir  string // DirRX | DirTX
	Text string
	TSms int64
}

// Heartbeat is the periodic liveness payload.
type Heartbeat struct {
	UptimeMs int64
	TSms     int64
}

// ---- Compiled-in setup plans ----

// PinPlan assigns board GPIO numbers to the rig's logical lines.
type PinPlan struct {
	StartButton int
	EndButton   int
	Clamp       int
	Pulse       int
	Result      int
}

// UARTPlan selects and configures the hardware UART for the host link.
type UARTPlan struct {
	ID   string // "uart0" | "uart1"
	TX   int
	RX   int
	Baud uint32
}

// HeartbeatConfig tunes the heartbeat service.
type HeartbeatConfig struct {
	IntervalMs int
}

// SetupPlan is everything one board variant needs at boot.
type SetupPlan struct {
	Name      string
	Pins      PinPlan
	UART      UARTPlan
	Heartbeat HeartbeatConfig
}
