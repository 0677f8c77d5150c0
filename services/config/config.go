package config

import (
	"context"

	"cyclerig-go/bus"
	"cyclerig-go/errcode"
	"cyclerig-go/types"
)

// Service owns the board plan selected at build time and announces it on the
// bus as retained messages, one per section, so services can pick up their
// piece without knowing about each other.
type Service struct {
	plan types.SetupPlan
}

func NewService() *Service {
	return &Service{plan: defaultPlan()}
}

// Plan returns the selected board plan for direct (startup-time) consumers.
func (s *Service) Plan() types.SetupPlan { return s.plan }

// Start publishes the plan sections retained. Synchronous: callers rely on the
// config being on the bus before dependent services start.
func (s *Service) Start(_ context.Context, conn *bus.Connection) error {
	if s.plan.Name == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.start", Msg: "plan has no name"}
	}
	conn.Publish(conn.NewMessage(bus.T("config", "pins"), s.plan.Pins, true))
	conn.Publish(conn.NewMessage(bus.T("config", "uart"), s.plan.UART, true))
	conn.Publish(conn.NewMessage(bus.T("config", "heartbeat"), s.plan.Heartbeat, true))
	println("Info: config published for plan", s.plan.Name)
	return nil
}
