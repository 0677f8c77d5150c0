//go:build !hw2

package config

import "cyclerig-go/types"

// Board plan for the first rig revision. Buttons have external pulldowns;
// the host link is UART0 on the standard Pico pins.
func defaultPlan() types.SetupPlan {
	return types.SetupPlan{
		Name: "hw1",
		Pins: types.PinPlan{
			StartButton: 2,
			EndButton:   3,
			Clamp:       10,
			Pulse:       11,
			Result:      12,
		},
		UART: types.UARTPlan{
			ID:   "uart0",
			TX:   0,
			RX:   1,
			Baud: 115200,
		},
		Heartbeat: types.HeartbeatConfig{IntervalMs: 2000},
	}
}
