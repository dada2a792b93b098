package scoring

import "career-fit-service/internal/domain"

// Compute builds the assessment result from the current answers. Overrides,
// when set, replace the assessment's weights or thresholds and are validated
// before anything is scored.
func Compute(a domain.Assessment, answers AnswerSource, o domain.Overrides) (domain.AssessmentResult, error) {
	weights := a.EffectiveWeights()
	if o.Weights != nil {
		weights = *o.Weights
	}
	if err := weights.Validate(); err != nil {
		return domain.AssessmentResult{}, err
	}
	thresholds := a.EffectiveThresholds()
	if o.Thresholds != nil {
		thresholds = *o.Thresholds
	}
	if err := thresholds.Validate(); err != nil {
		return domain.AssessmentResult{}, err
	}

	psychological, err := ScoreCategory(a.Questions, answers, domain.CategoryPsychological)
	if err != nil {
		return domain.AssessmentResult{}, err
	}
	technical, err := ScoreCategory(a.Questions, answers, domain.CategoryTechnical)
	if err != nil {
		return domain.AssessmentResult{}, err
	}
	wiscar, err := SynthesizeWiscar(a.Questions, answers)
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	overall := CombineScores(weights, psychological.Score, technical.Score, wiscar.Overall)
	tier := Classify(overall, thresholds)

	return domain.AssessmentResult{
		AssessmentID:       a.ID,
		PsychologicalFit:   psychological,
		TechnicalReadiness: technical,
		Wiscar:             wiscar,
		OverallScore:       overall,
		Recommendation:     tier,
		CareerMatches: MatchCareers(a.Roles, ComponentScores{
			Psychological: psychological.Score,
			Technical:     technical.Score,
			Wiscar:        wiscar.Overall,
			Overall:       overall,
		}),
		NextSteps:  NextSteps(a.NextSteps, tier),
		Weights:    weights,
		Thresholds: thresholds,
	}, nil
}
