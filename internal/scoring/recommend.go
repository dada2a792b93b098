package scoring

import "career-fit-service/internal/domain"

// CombineScores applies the component weights. Weights must already be validated.
func CombineScores(w domain.Weights, psychological, technical, wiscar int) int {
	overall := w.Psychological*float64(psychological) +
		w.Technical*float64(technical) +
		w.Wiscar*float64(wiscar)
	return clampInt(round(overall), 0, 100)
}

// Classify maps a score onto a tier. Both cut points are inclusive lower bounds.
func Classify(score int, t domain.Thresholds) domain.Tier {
	switch {
	case score >= t.Yes:
		return domain.TierYes
	case score >= t.Maybe:
		return domain.TierMaybe
	default:
		return domain.TierNo
	}
}
