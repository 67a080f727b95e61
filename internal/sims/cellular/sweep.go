package cellular

import (
	"fmt"
	"sort"
	"sync"

	"gridca/internal/automaton"
)

// ScenarioResult summarizes one infection run.
type ScenarioResult struct {
	Params automaton.Params
	// MeanInfected is the average infected share over the second half of the run.
	MeanInfected float64
	// PeakIll is the largest number of simultaneously ill cells.
	PeakIll int
	// ExtinctAt is the generation at which no cell was infected or ill, or
	// zero if the epidemic persisted.
	ExtinctAt int
	Steps     int
	Err       error
}

func (r ScenarioResult) String() string {
	return fmt.Sprintf("k1=%d k2=%d g=%.1f meanInfected=%.3f peakIll=%d extinct=%d",
		r.Params.InfectionResistance, r.Params.IllnessResistance, r.Params.Infectivity,
		r.MeanInfected, r.PeakIll, r.ExtinctAt)
}

// RunInfectionScenario runs the infection rule for steps generations with
// base's world settings and params.
func RunInfectionScenario(base Config, params automaton.Params, steps int) ScenarioResult {
	cfg := base
	cfg.Rule = automaton.Infection
	cfg.Params = params
	cfg.Workers = 1
	res := ScenarioResult{Params: params}

	sim, err := New(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		res.Err = err
		return res
	}

	total := float64(cfg.Width * cfg.Height)
	var infectedSum float64
	samples := 0
	for step := 1; step <= steps; step++ {
		if err := sim.Step(); err != nil {
			res.Err = err
			return res
		}
		res.Steps = step
		pop := sim.Population()
		if ill := pop[automaton.Ill]; ill > res.PeakIll {
			res.PeakIll = ill
		}
		if step > steps/2 {
			infectedSum += float64(pop[automaton.Infected]) / total
			samples++
		}
		if pop[automaton.Infected] == 0 && pop[automaton.Ill] == 0 {
			res.ExtinctAt = step
			break
		}
	}
	if samples > 0 {
		res.MeanInfected = infectedSum / float64(samples)
	}
	return res
}

// SweepInfection evaluates every parameter set on a pool of workers and
// returns the results ordered by descending MeanInfected.
func SweepInfection(base Config, sets []automaton.Params, steps, workers int) []ScenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan automaton.Params)
	results := make(chan ScenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- RunInfectionScenario(base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	all := make([]ScenarioResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].MeanInfected != all[j].MeanInfected {
			return all[i].MeanInfected > all[j].MeanInfected
		}
		return all[i].String() < all[j].String()
	})
	return all
}
