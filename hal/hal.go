// Package hal is the hardware boundary the firmware is written against.
// The rp2 build backs it with machine pins and a uartx UART; the host build
// backs it with fakes so the whole control loop runs under go test.
package hal

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is one digital line.
type Pin interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// Port is the serial endpoint the firmware polls. Reads must never block:
// Buffered reports how many bytes ReadByte can return immediately.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Registry hands out claimed hardware resources. A resource stays claimed
// until released by the same owner; claiming someone else's resource fails
// with errcode.PinInUse / errcode.PortInUse.
type Registry interface {
	ClaimPin(owner string, n int) (Pin, error)
	ReleasePin(owner string, n int)
	ClaimPort(owner, id string) (Port, error)
	ReleasePort(owner, id string)
}
