package scoring

import (
	"career-fit-service/internal/domain"
)

// AnswerSource exposes the current answer per question. The response
// store owns the data; scoring only reads through this accessor.
type AnswerSource interface {
	Answer(questionID string) (domain.Value, bool)
}

// Answers is a map-backed AnswerSource, handy for fixtures and offline evaluation.
type Answers map[string]domain.Value

func (a Answers) Answer(questionID string) (domain.Value, bool) {
	v, ok := a[questionID]
	return v, ok
}

type weightedMean struct {
	sum    float64
	weight float64
}

func (m *weightedMean) add(value, weight float64) {
	m.sum += value * weight
	m.weight += weight
}

func (m weightedMean) score() int {
	if m.weight == 0 {
		return 0
	}
	return clampInt(round(m.sum/m.weight), 0, 100)
}

// ScoreCategory reduces the answers to questions in category to one 0..100
// score. It returns a *domain.NoDataError when nothing in the category was
// answered; callers decide how to present that.
func ScoreCategory(questions []domain.Question, answers AnswerSource, category domain.Category) (domain.CategoryScore, error) {
	result := domain.CategoryScore{Category: category}

	var total weightedMean
	subs := make(map[string]*weightedMean)
	var order []string

	for _, q := range questions {
		if q.Category != category {
			continue
		}
		result.TotalCount++

		v, ok := answers.Answer(q.ID)
		if !ok {
			continue
		}
		normalized, err := Normalize(q, v)
		if err != nil {
			return domain.CategoryScore{}, err
		}
		result.AnsweredCount++
		total.add(normalized, q.EffectiveWeight())

		if q.Subcategory == "" {
			continue
		}
		sub, seen := subs[q.Subcategory]
		if !seen {
			sub = &weightedMean{}
			subs[q.Subcategory] = sub
			order = append(order, q.Subcategory)
		}
		sub.add(normalized, q.EffectiveWeight())
	}

	if result.AnsweredCount == 0 {
		return domain.CategoryScore{}, &domain.NoDataError{Category: category}
	}

	result.Score = total.score()
	for _, label := range order {
		result.Breakdown = append(result.Breakdown, domain.SubcategoryScore{
			Label: label,
			Score: subs[label].score(),
		})
	}
	return result, nil
}
