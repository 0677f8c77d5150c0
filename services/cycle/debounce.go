package cycle

import "time"

// DebounceWindow is how long a raw level must hold constant before a change
// is trusted. Shared by both buttons.
const DebounceWindow = 50 * time.Millisecond

// Edge is a confirmed stable transition.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

// Debouncer filters one noisy digital input down to a stable logical level.
// Both raw and stable levels start LOW; any raw edge restarts the settle
// window, even when it does not lead to a stable change, so a continuously
// bouncing input never commits.
type Debouncer struct {
	stable     bool
	lastRaw    bool
	lastBounce time.Time
}

// Sample feeds one raw reading taken at now. The stable level commits only
// once the raw level has held for more than DebounceWindow since the last
// observed raw transition; the returned Edge reports that commit.
func (d *Debouncer) Sample(raw bool, now time.Time) Edge {
	if raw != d.lastRaw {
		d.lastBounce = now
	}
	d.lastRaw = raw
	if now.Sub(d.lastBounce) > DebounceWindow && raw != d.stable {
		d.stable = raw
		if raw {
			return EdgeRising
		}
		return EdgeFalling
	}
	return EdgeNone
}

// Stable returns the current trusted level.
func (d *Debouncer) Stable() bool { return d.stable }
