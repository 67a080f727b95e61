package automaton

import "testing"

func TestSetStateFlagsOnlyRealChanges(t *testing.T) {
	var c Cell
	c.SetState(Dead)
	if c.Changed() {
		t.Fatal("setting the same state must not flag a change")
	}
	c.SetState(Alive)
	if !c.Changed() || c.State() != Alive {
		t.Fatalf("state=%d changed=%v after 0->1", c.State(), c.Changed())
	}
	c.SetState(Alive)
	if c.Changed() {
		t.Fatal("repeat of the current state must clear the flag")
	}
}

func TestAcknowledgeRenderIsIdempotent(t *testing.T) {
	var c Cell
	c.SetState(Alive)
	c.AcknowledgeRender()
	if c.Changed() {
		t.Fatal("flag still set after first acknowledgement")
	}
	c.AcknowledgeRender()
	if c.Changed() {
		t.Fatal("flag set after second acknowledgement")
	}
}

func TestSetInfectionKeepsPendingStateChange(t *testing.T) {
	var c Cell
	c.SetState(Infected)
	c.SetInfection(0)
	if !c.Changed() {
		t.Fatal("unchanged infection level cleared a pending state change")
	}
	c.AcknowledgeRender()
	c.SetState(Infected)
	c.SetInfection(12.5)
	if !c.Changed() || c.Infection() != 12.5 {
		t.Fatalf("level-only change not flagged: changed=%v level=%g", c.Changed(), c.Infection())
	}
}
