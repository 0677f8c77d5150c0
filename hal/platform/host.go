// hal/platform/host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"io"
	"sync"

	"cyclerig-go/errcode"
	"cyclerig-go/hal"
	"cyclerig-go/types"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hal.Pin for host-side tests and the simulator.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    hal.Pull
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

// IsOutput reports the configured direction, for tests.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	v := p.modeOut
	p.mu.RUnlock()
	return v
}

// ----------------------------- Serial (host) ---------------------------------

// FakePort implements hal.Port. Tests push host->device bytes with PushRX and
// inspect device->host bytes with TakeTX.
type FakePort struct {
	mu sync.Mutex
	rx []byte
	tx []byte
}

func (f *FakePort) Buffered() int {
	f.mu.Lock()
	n := len(f.rx)
	f.mu.Unlock()
	return n
}

func (f *FakePort) ReadByte() (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rx) == 0 {
		return 0, io.EOF
	}
	b := f.rx[0]
	f.rx = f.rx[1:]
	return b, nil
}

func (f *FakePort) Write(p []byte) (int, error) {
	f.mu.Lock()
	f.tx = append(f.tx, p...)
	f.mu.Unlock()
	return len(p), nil
}

// PushRX queues bytes as if the host had sent them.
func (f *FakePort) PushRX(p []byte) {
	f.mu.Lock()
	f.rx = append(f.rx, p...)
	f.mu.Unlock()
}

// TakeTX drains and returns everything the device wrote so far.
func (f *FakePort) TakeTX() []byte {
	f.mu.Lock()
	out := f.tx
	f.tx = nil
	f.mu.Unlock()
	return out
}

// ----------------------------- Registry (host) -------------------------------

// Registry is the host hal.Registry: stable fakes per pin number plus a fake
// port per UART id.
type Registry struct {
	mu         sync.Mutex
	pins       map[int]*FakePin
	pinOwners  map[int]string
	ports      map[string]*FakePort
	portOwners map[string]string
}

// NewRegistry builds a host registry. The plan's UART id names the single
// fake port; ctx matches the rp2 constructor signature and is unused here.
func NewRegistry(_ context.Context, plan types.UARTPlan) *Registry {
	id := plan.ID
	if id == "" {
		id = "uart0"
	}
	return &Registry{
		pins:       map[int]*FakePin{},
		pinOwners:  map[int]string{},
		ports:      map[string]*FakePort{id: {}},
		portOwners: map[string]string{},
	}
}

func (r *Registry) ClaimPin(owner string, n int) (hal.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 {
		return nil, errcode.UnknownPin
	}
	if cur, taken := r.pinOwners[n]; taken && cur != owner {
		return nil, errcode.PinInUse
	}
	p, ok := r.pins[n]
	if !ok {
		p = &FakePin{number: n}
		r.pins[n] = p
	}
	r.pinOwners[n] = owner
	return p, nil
}

func (r *Registry) ReleasePin(owner string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pinOwners[n]; ok && cur == owner {
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

// Pin exposes the underlying *FakePin for tests (e.g. to drive raw levels).
func (r *Registry) Pin(n int) (*FakePin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pins[n]
	return p, ok
}

// Port exposes the underlying *FakePort for tests.
func (r *Registry) Port(id string) (*FakePort, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.ports[id]
	return p, ok
}
