package main

import (
	"context"
	"time"

	"cyclerig-go/bus"
	"cyclerig-go/hal"
	"cyclerig-go/hal/platform"
	"cyclerig-go/services/config"
	"cyclerig-go/services/cycle"
	"cyclerig-go/services/heartbeat"
)

const owner = "cycle"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.Background()
	b := bus.NewBus(8)

	cfg := config.NewService()
	if err := cfg.Start(ctx, b.NewConnection("config")); err != nil {
		println("Error: config:", err.Error())
		return
	}
	plan := cfg.Plan()
	println("Info: plan", plan.Name)

	reg := platform.NewRegistry(ctx, plan.UART)

	claim := func(n int) hal.Pin {
		p, err := reg.ClaimPin(owner, n)
		if err != nil {
			println("Error: claim pin", n, err.Error())
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
	if start == nil || end == nil || out.Clamp == nil || out.Pulse == nil || out.Result == nil {
		return
	}
	port, err := reg.ClaimPort(owner, plan.UART.ID)
	if err != nil {
		println("Error: claim port", plan.UART.ID, err.Error())
		return
	}

	cycleConn := b.NewConnection(owner)
	ctrl := cycle.NewController(start, end, out, port, &cycle.BusObserver{Conn: cycleConn})
	svc := cycle.NewService(ctrl, cycleConn, 0)
	if err := svc.Start(ctx); err != nil {
		println("Error: cycle:", err.Error())
		return
	}

	hb := &heartbeat.Service{}
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("Error: heartbeat:", err.Error())
		return
	}

	println("Info: running")
	select {}
}
