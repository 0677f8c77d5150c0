package heartbeat

import (
	"context"
	"time"

	"cyclerig-go/bus"
	"cyclerig-go/types"
	"cyclerig-go/x/timex"
)

const defaultInterval = time.Second

var (
	topicConfig    = bus.T("config", "heartbeat")
	topicHeartbeat = bus.T("sys", "heartbeat")
)

// Service publishes a retained liveness beacon so anything watching the bus
// can tell the firmware is still ticking.
type Service struct {
	started time.Time
}

// Start launches the heartbeat loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.started = time.Now()
	go s.loop(ctx, conn)
	return nil
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case now := <-tick.C:
			conn.Publish(conn.NewMessage(topicHeartbeat, types.Heartbeat{
				UptimeMs: now.Sub(s.started).Milliseconds(),
				TSms:     timex.Ms(now),
			}, true))
		case msg := <-cfgSub.Channel():
			cfg, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok || cfg.IntervalMs <= 0 {
				println("Warn: heartbeat ignoring bad config")
				continue
			}
			tick.Reset(time.Duration(cfg.IntervalMs) * time.Millisecond)
			println("Info: heartbeat interval set to", cfg.IntervalMs, "ms")
		}
	}
}
