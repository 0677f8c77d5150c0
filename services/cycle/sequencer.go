package cycle

import "time"

// Phase is the sequencer state.
type Phase uint8

const (
	PhaseIdle     Phase = iota
	PhasePrePulse       // clamp latched, waiting to raise the pulse output
	PhasePulse          // pulse output high, waiting to drop it
)

func (p Phase) String() string {
	switch p {
	case PhasePrePulse:
		return "pre_pulse"
	case PhasePulse:
		return "pulse"
	default:
		return "idle"
	}
}

// Fixed cycle timing. The pulse output goes high prePulseDelay after the
// trigger and back low pulseWidth later.
const (
	prePulseDelay = 1000 * time.Millisecond
	pulseWidth    = 500 * time.Millisecond
)

// Action is the output change the caller must apply after a Tick.
type Action uint8

const (
	ActionNone Action = iota
	ActionPulseHigh
	ActionPulseLow
)

// Sequencer runs the fixed-timing output sequence as a deadline-driven state
// machine, so the surrounding poll loop stays responsive between the two
// transitions. Deadlines chain off each other rather than off tick arrival
// times, keeping the total trigger-to-idle span at exactly
// prePulseDelay+pulseWidth regardless of tick jitter.
type Sequencer struct {
	phase    Phase
	deadline time.Time
}

func (s *Sequencer) Phase() Phase  { return s.phase }
func (s *Sequencer) Running() bool { return s.phase != PhaseIdle }

// Trigger starts a cycle. A trigger while a cycle is running is ignored:
// no re-entrancy, no queuing.
func (s *Sequencer) Trigger(now time.Time) bool {
	if s.phase != PhaseIdle {
		return false
	}
	s.phase = PhasePrePulse
	s.deadline = now.Add(prePulseDelay)
	return true
}

// Tick advances the machine past any expired deadline and returns the output
// action due at this tick.
func (s *Sequencer) Tick(now time.Time) Action {
	switch s.phase {
	case PhasePrePulse:
		if now.Before(s.deadline) {
			return ActionNone
		}
		s.phase = PhasePulse
		s.deadline = s.deadline.Add(pulseWidth)
		return ActionPulseHigh
	case PhasePulse:
		if now.Before(s.deadline) {
			return ActionNone
		}
		s.phase = PhaseIdle
		return ActionPulseLow
	default:
		return ActionNone
	}
}
