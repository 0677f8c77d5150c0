//go:build !rp2040 && !rp2350

// Command hostsim runs the whole firmware against the host fakes: stdin and
// stdout stand in for the serial link, and bang-prefixed meta commands press
// the physical buttons. Useful for trying the protocol without a board.
//
//	!start       press and release the cycle-start button
//	!end         press and release the cycle-end button
//	!quit        exit
//	<anything>   sent to the firmware as a serial line
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"cyclerig-go/bus"
	"cyclerig-go/hal"
	"cyclerig-go/hal/platform"
	"cyclerig-go/services/config"
	"cyclerig-go/services/cycle"
	"cyclerig-go/services/heartbeat"
)

// pressFor holds a fake button down long enough to clear the debounce window.
const pressFor = 80 * time.Millisecond

func main() {
	showBus := flag.Bool("bus", false, "print all bus traffic")
	flag.Parse()

	ctx := context.Background()
	b := bus.NewBus(32)

	cfg := config.NewService()
	if err := cfg.Start(ctx, b.NewConnection("config")); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	plan := cfg.Plan()

	reg := platform.NewRegistry(ctx, plan.UART)
	claim := func(n int) hal.Pin {
		p, err := reg.ClaimPin("cycle", n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "claim pin %d: %v\n", n, err)
			os.Exit(1)
		}
		return p
	}
	start := claim(plan.Pins.StartButton)
	end := claim(plan.Pins.EndButton)
	out := cycle.Outputs{
		Clamp:  claim(plan.Pins.Clamp),
		Pulse:  claim(plan.Pins.Pulse),
		Result: claim(plan.Pins.Result),
	}
	port, err := reg.ClaimPort("cycle", plan.UART.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "claim port:", err)
		os.Exit(1)
	}

	conn := b.NewConnection("cycle")
	ctrl := cycle.NewController(start, end, out, port, &cycle.BusObserver{Conn: conn})
	svc := cycle.NewService(ctrl, conn, 0)
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cycle:", err)
		os.Exit(1)
	}
	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	// Raw fakes for driving levels and tapping the serial link.
	startPin, _ := reg.Pin(plan.Pins.StartButton)
	endPin, _ := reg.Pin(plan.Pins.EndButton)
	fakePort, _ := reg.Port(plan.UART.ID)

	if *showBus {
		mon := b.NewConnection("monitor")
		sub := mon.Subscribe(bus.T(bus.WildcardAll))
		go func() {
			for m := range sub.Channel() {
				fmt.Printf("[bus] %s %+v\n", strings.Join(m.Topic, "/"), m.Payload)
			}
		}()
	}

	// Firmware -> terminal.
	go func() {
		for {
			if tx := fakePort.TakeTX(); len(tx) > 0 {
				for _, line := range strings.Split(strings.TrimSuffix(string(tx), "\n"), "\n") {
					fmt.Printf("<- %s\n", line)
				}
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	press := func(p *platform.FakePin) {
		p.Set(true)
		time.Sleep(pressFor)
		p.Set(false)
	}

	fmt.Printf("simulating plan %q; type !start, !end, !quit or a serial command\n", plan.Name)
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
		case "!start":
			go press(startPin)
		case "!end":
			go press(endPin)
		case "!quit":
			return
		default:
			fakePort.PushRX([]byte(line + "\n"))
		}
	}
}
