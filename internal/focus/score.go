package focus

import (
	"math"

	"github.com/okhv/focal/internal/config"
)

// Score derives a 0-100 focus score. The score starts at 100 and loses a
// fixed penalty per drift and per distraction, plus a shortfall penalty
// scaled into weights.ShortfallPenaltyMax by how far the actual duration
// fell short of the goal. Overshooting the goal is never penalized.
//
// The result is clamped to [0,100] and never increases when any penalty
// input grows.
func Score(drifts, distractions, actualMinutes, intendedMinutes int, weights config.ScoreConfig) int {
	if drifts < 0 {
		drifts = 0
	}
	if distractions < 0 {
		distractions = 0
	}

	penalty := drifts*weights.DriftPenalty + distractions*weights.DistractionPenalty

	if intendedMinutes > 0 && actualMinutes < intendedMinutes {
		if actualMinutes < 0 {
			actualMinutes = 0
		}
		shortfall := 1 - float64(actualMinutes)/float64(intendedMinutes)
		penalty += int(math.Round(shortfall * float64(weights.ShortfallPenaltyMax)))
	}

	score := 100 - penalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
