package stats

import (
	"bytes"
	"errors"
	"testing"

	"gridca/internal/automaton"
	"gridca/internal/core"
	"gridca/internal/sims/cellular"
	"gridca/internal/sims/elementary"
)

func newSim(t *testing.T, rule automaton.Rule) *cellular.Sim {
	t.Helper()
	cfg := cellular.DefaultConfig(rule)
	cfg.Width, cfg.Height = 20, 20
	sim, err := cellular.New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := sim.Reset(7); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return sim
}

func TestRecordCountsEveryGeneration(t *testing.T) {
	sim := newSim(t, automaton.BriansBrain)
	h, err := Record(sim, 10, automaton.BriansBrain.StateNames())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if h.Generations() != 11 {
		t.Fatalf("generations=%d, want 11", h.Generations())
	}
	if len(h.Series) != 3 || h.Names[2] != "dying" {
		t.Fatalf("unexpected series layout: %v", h.Names)
	}
	for g := 0; g < h.Generations(); g++ {
		total := 0
		for s := range h.Series {
			total += h.Series[s][g]
		}
		if total != 400 {
			t.Fatalf("generation %d totals %d cells, want 400", g, total)
		}
	}
	if sim.Generation() != 10 {
		t.Fatalf("sim advanced %d generations, want 10", sim.Generation())
	}
}

func TestRecordFillsMissingNames(t *testing.T) {
	h, err := Record(newSim(t, automaton.Life), 1, []string{"off"})
	if err != nil {
		t.Fatal(err)
	}
	if h.Names[0] != "off" || h.Names[1] != "state 1" {
		t.Fatalf("names=%v", h.Names)
	}
}

func TestRecordRejectsSimWithoutPopulation(t *testing.T) {
	sim, err := elementary.New(16, 8, 90)
	if err != nil {
		t.Fatal(err)
	}
	var s core.Sim = sim
	if _, err := Record(s, 3, nil); !errors.Is(err, ErrNoPopulation) {
		t.Fatalf("err=%v, want ErrNoPopulation", err)
	}
}

func TestWritePNG(t *testing.T) {
	h, err := Record(newSim(t, automaton.Infection), 5, automaton.Infection.StateNames())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := h.WritePNG(&buf, "infection", 640, 360); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}

func TestWritePNGNeedsTwoSamples(t *testing.T) {
	h := &History{Names: []string{"a"}, Series: [][]int{{1}}}
	if err := h.WritePNG(&bytes.Buffer{}, "", 100, 100); err == nil {
		t.Fatal("expected error for a single sample")
	}
}
