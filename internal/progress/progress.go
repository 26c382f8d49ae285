// Package progress liczy postęp realizacji planu legalizacji.
package progress

import "math"

// Result opisuje postęp względem planu.
// Percent jest zawsze liczbą całkowitą z przedziału [0,100],
// obcinaną do 100 nawet przy nadwyżce.
type Result struct {
	Done      int `json:"done"`
	Remaining int `json:"remaining"`
	Overflow  int `json:"overflow"`
	Percent   int `json:"percent"`
}

// Compute sumuje zarejestrowane liczby sztuk i odnosi je do planu.
// Plan niebędący skończoną liczbą dodatnią traktowany jest jak 0;
// wpisy ujemne liczą się jako 0, ułamkowe są obcinane w dół.
func Compute(planned float64, counts []float64) Result {
	safePlanned := 0
	if !math.IsNaN(planned) && !math.IsInf(planned, 0) && planned > 0 {
		safePlanned = int(math.Floor(planned))
	}

	done := 0
	for _, count := range counts {
		if math.IsNaN(count) || math.IsInf(count, 0) {
			continue
		}
		done += int(math.Max(0, math.Floor(count)))
	}

	remaining := safePlanned - done
	if remaining < 0 {
		remaining = 0
	}
	overflow := done - safePlanned
	if overflow < 0 {
		overflow = 0
	}

	percent := 0
	if safePlanned > 0 {
		percent = int(math.Round(float64(done) / float64(safePlanned) * 100))
		if percent > 100 {
			percent = 100
		}
	}

	return Result{Done: done, Remaining: remaining, Overflow: overflow, Percent: percent}
}

// ComputeInts to wariant dla liczb całkowitych (agregaty z bazy).
func ComputeInts(planned int, counts ...int) Result {
	floats := make([]float64, len(counts))
	for i, c := range counts {
		floats[i] = float64(c)
	}
	return Compute(float64(planned), floats)
}
