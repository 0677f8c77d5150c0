// hal/platform/rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"context"
	"io"
	"machine"
	"sync"
	"time"

	"cyclerig-go/errcode"
	"cyclerig-go/hal"
	"cyclerig-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// ----------------------------- GPIO (rp2) ------------------------------------

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull hal.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

// ----------------------------- Serial (rp2) ----------------------------------

const rxQueueMax = 512

// uartPort adapts a uartx UART to hal.Port. A pump goroutine moves received
// bytes into a local queue so the poll loop never blocks on the hardware.
type uartPort struct {
	u  *uartx.UART
	mu sync.Mutex
	rx []byte
}

func newUARTPort(ctx context.Context, u *uartx.UART) *uartPort {
	p := &uartPort{u: u}
	go p.pump(ctx)
	return p
}

func (p *uartPort) pump(ctx context.Context) {
	buf := make([]byte, 64)
	for {
		n, err := p.u.RecvSomeContext(ctx, buf)
		if n > 0 {
			p.mu.Lock()
			if len(p.rx)+n <= rxQueueMax {
				p.rx = append(p.rx, buf[:n]...)
			}
			// else drop: protect the loop from a runaway sender
			p.mu.Unlock()
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Hardware fault: yield instead of spinning on the error.
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func (p *uartPort) Buffered() int {
	p.mu.Lock()
	n := len(p.rx)
	p.mu.Unlock()
	return n
}

func (p *uartPort) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.rx) == 0 {
		return 0, io.EOF
	}
	b := p.rx[0]
	p.rx = p.rx[1:]
	return b, nil
}

func (p *uartPort) Write(b []byte) (int, error) { return p.u.Write(b) }

// ----------------------------- Registry (rp2) --------------------------------

// Registry is the rp2 hal.Registry over machine pins and the planned UART.
type Registry struct {
	mu         sync.Mutex
	pinOwners  map[int]string
	pins       map[int]*rp2Pin
	ports      map[string]*uartPort
	portOwners map[string]string
}

// NewRegistry configures the planned UART and returns the board registry.
func NewRegistry(ctx context.Context, plan types.UARTPlan) *Registry {
	r := &Registry{
		pinOwners:  map[int]string{},
		pins:       map[int]*rp2Pin{},
		ports:      map[string]*uartPort{},
		portOwners: map[string]string{},
	}

	var hw *uartx.UART
	switch plan.ID {
	case "uart1":
		hw = uartx.UART1
	default:
		hw = uartx.UART0
	}
	// Defaults inside uartx apply for zero fields.
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: plan.Baud,
		TX:       machine.Pin(plan.TX),
		RX:       machine.Pin(plan.RX),
	})
	id := plan.ID
	if id == "" {
		id = "uart0"
	}
	r.ports[id] = newUARTPort(ctx, hw)

	return r
}

func (r *Registry) ClaimPin(owner string, n int) (hal.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, errcode.UnknownPin
	}
	if cur, taken := r.pinOwners[n]; taken && cur != owner {
		return nil, errcode.PinInUse
	}
	p, ok := r.pins[n]
	if !ok {
		p = &rp2Pin{p: machine.Pin(n), n: n}
		r.pins[n] = p
	}
	r.pinOwners[n] = owner
	return p, nil
}

func (r *Registry) ReleasePin(owner string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pinOwners[n]; ok && cur == owner {
		// Put the pin back to input on release.
		machine.Pin(n).Configure(machine.PinConfig{Mode: machine.PinInput})
		delete(r.pinOwners, n)
	}
}

func (r *Registry) ClaimPort(owner, id string) (hal.Port, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.ports[id]
	if !ok {
		return nil, errcode.UnknownPort
	}
	if cur, taken := r.portOwners[id]; taken && cur != owner {
		return nil, errcode.PortInUse
	}
	r.portOwners[id] = owner
	return p, nil
}

func (r *Registry) ReleasePort(owner, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.portOwners[id]; ok && cur == owner {
		delete(r.portOwners, id)
	}
}
