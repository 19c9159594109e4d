package planner

import (
	"math"

	"github.com/alexanderramin/termplan/internal/domain"
)

// ScoreTerm rates adding a load of units/difficulty to term t during the
// fallback phase. position is the term's index in the planning sequence;
// later terms score lower.
func ScoreTerm(t *domain.Term, units, difficulty, position int, th Thresholds, w ScoreWeights) float64 {
	var score float64
	newUnits := t.Units + units
	newDifficulty := t.Difficulty + difficulty

	if t.Units < th.MinUnits {
		score += w.UnderMinBonus
		if newUnits >= th.MinUnits {
			score += w.ReachMinBonus
		}
	} else if newUnits > th.MaxUnits {
		score -= w.OverMaxPenalty
	}

	if newDifficulty <= th.TargetDifficulty {
		score += w.DifficultyTargetBonus
	} else {
		score -= float64(newDifficulty-th.TargetDifficulty) * w.DifficultyOveragePenalty
	}

	if newDifficulty < th.MaxDifficulty-w.DifficultyHeadroomMargin {
		score += w.DifficultyHeadroomBonus
	}

	score -= math.Abs(float64(newUnits-th.TargetUnits)) * w.UnitDeviationPenalty
	score -= float64(position) * w.LateTermPenalty
	return score
}

// CleanupScore rates a term as a last-resort destination: emptier terms,
// more difficulty headroom and earlier positions score higher.
func CleanupScore(t *domain.Term, position int, th Thresholds, w ScoreWeights) float64 {
	var score float64
	score -= float64(t.Units) * w.CleanupLowUnitsWeight
	score += float64(th.MaxDifficulty-t.Difficulty) * w.CleanupHeadroomWeight
	score -= float64(position) * w.CleanupEarlyTermWeight
	return score
}
