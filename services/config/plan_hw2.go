//go:build hw2

package config

import "cyclerig-go/types"

// Board plan for the second rig revision: same protocol, different loom.
// Outputs moved to the 16..18 bank, buttons shifted to free the I2C pins.
func defaultPlan() types.SetupPlan {
	return types.SetupPlan{
		Name: "hw2",
		Pins: types.PinPlan{
			StartButton: 4,
			EndButton:   5,
			Clamp:       16,
			Pulse:       17,
			Result:      18,
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
