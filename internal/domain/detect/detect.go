// Package detect implements GSR event detection: two independent candidate
// generators over the normalized series, merged, gap-filtered and scored.
package detect

import (
	"fmt"
	"math"
	"sort"

	"github.com/patman77/NeuroNarrative/internal/domain/model"
	"github.com/patman77/NeuroNarrative/internal/domain/rules"
	"github.com/patman77/NeuroNarrative/internal/domain/signal"
)

// candidate method tags, merged by index when both methods fire.
const (
	methodDerivative = 1 << iota
	methodChangepoint
)

// Detect runs both candidate generators over the series and returns ranked,
// gap-filtered events in ascending time order.
//
// The derivative-threshold method catches sharp transients: the discrete
// gradient is scaled by the estimated sampling rate, z-score normalized, and
// every index at or above rule.DerivativeZ becomes a candidate. The
// changepoint method catches sustained level shifts via a penalized RBF
// segmentation. Candidates are unioned by index and thinned by a single
// ascending greedy scan keyed on the last kept candidate's timestamp.
func Detect(series signal.Series, rule rules.EventRule) []model.Event {
	n := series.Len()
	if n == 0 {
		return nil
	}

	candidates := map[int]uint8{}

	rate := series.SamplingRateHz()
	deriv := gradient(series.ResistanceKohm)
	for i := range deriv {
		deriv[i] *= rate
	}
	for i, z := range zscore(deriv) {
		if z >= rule.DerivativeZ {
			candidates[i] |= methodDerivative
		}
	}

	for _, boundary := range changepoints(series.ResistanceKohm, rule.ChangepointPenalty) {
		idx := boundary - 1
		if idx < 0 {
			idx = 0
		}
		candidates[idx] |= methodChangepoint
	}

	indices := make([]int, 0, len(candidates))
	for idx := range candidates {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	// Greedy min-gap scan. Rejected candidates never reset the reference
	// point, so the earlier of two close candidates always wins.
	kept := indices[:0]
	lastKept := -1e9
	for _, idx := range indices {
		t := series.TimeSec[idx]
		if t-lastKept >= rule.MinGapSec {
			kept = append(kept, idx)
			lastKept = t
		}
	}

	baseline := median(series.ResistanceKohm)
	zs := zscore(series.ResistanceKohm)

	events := make([]model.Event, 0, len(kept))
	for _, idx := range kept {
		deltaKohm := series.ResistanceKohm[idx] - baseline
		deltaZ := zs[idx]
		events = append(events, model.Event{
			EventID:   fmt.Sprintf("evt-%d", idx),
			TimeSec:   series.TimeSec[idx],
			Rule:      rule.Name,
			DeltaKohm: deltaKohm,
			DeltaZ:    deltaZ,
			Score:     math.Abs(deltaZ) + math.Abs(deltaKohm),
		})
	}
	return events
}
