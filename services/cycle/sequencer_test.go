package cycle

import "testing"

func TestSequencerTiming(t *testing.T) {
	var s Sequencer

	if !s.Trigger(t0) {
		t.Fatal("trigger from idle must start a cycle")
	}
	if s.Phase() != PhasePrePulse {
		t.Fatalf("phase after trigger = %v, want pre_pulse", s.Phase())
	}

	// Nothing happens before the first deadline.
	for ms := 0; ms < 1000; ms++ {
		if a := s.Tick(at(ms)); a != ActionNone {
			t.Fatalf("action %v at %dms, want none before 1000ms", a, ms)
		}
	}
	if a := s.Tick(at(1000)); a != ActionPulseHigh {
		t.Fatalf("action at 1000ms = %v, want pulse high", a)
	}
	if s.Phase() != PhasePulse {
		t.Fatalf("phase after pulse high = %v, want pulse", s.Phase())
	}

	for ms := 1001; ms < 1500; ms++ {
		if a := s.Tick(at(ms)); a != ActionNone {
			t.Fatalf("action %v at %dms, want none before 1500ms", a, ms)
		}
	}
	if a := s.Tick(at(1500)); a != ActionPulseLow {
		t.Fatalf("action at 1500ms = %v, want pulse low", a)
	}
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after pulse low = %v, want idle", s.Phase())
	}
}

func TestSequencerIgnoresRetrigger(t *testing.T) {
	var s Sequencer
	s.Trigger(t0)

	if s.Trigger(at(200)) {
		t.Error("trigger while pre_pulse must be ignored")
	}
	s.Tick(at(1000))
	if s.Trigger(at(1200)) {
		t.Error("trigger while pulse must be ignored")
	}
	s.Tick(at(1500))
	if !s.Trigger(at(1600)) {
		t.Error("trigger after the cycle completed must start a new one")
	}
}

func TestSequencerLateTicksKeepTotalSpan(t *testing.T) {
	var s Sequencer
	s.Trigger(t0)

	// A tick arriving 30ms late still chains the second deadline off the
	// first, so pulse low lands at exactly +1500ms.
	if a := s.Tick(at(1030)); a != ActionPulseHigh {
		t.Fatalf("late tick at 1030ms = %v, want pulse high", a)
	}
	if a := s.Tick(at(1499)); a != ActionNone {
		t.Fatalf("action at 1499ms = %v, want none", a)
	}
	if a := s.Tick(at(1500)); a != ActionPulseLow {
		t.Fatalf("action at 1500ms = %v, want pulse low", a)
	}
}

func TestSequencerIdleTicksAreNoops(t *testing.T) {
	var s Sequencer
	for ms := 0; ms < 100; ms += 10 {
		if a := s.Tick(at(ms)); a != ActionNone {
			t.Fatalf("idle tick produced %v", a)
		}
	}
	if s.Running() {
		t.Error("sequencer must stay idle without a trigger")
	}
}
