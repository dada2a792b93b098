// Package scoring turns recorded answers into category scores, a WISCAR
// profile, an overall score, a recommendation tier and career matches.
//
// Every function here is pure: identical inputs always produce identical
// results, and nothing reads clocks, randomness or global state.
package scoring

import (
	"fmt"
	"math"

	"career-fit-service/internal/domain"
)

// Normalize maps one validated answer onto 0..100.
func Normalize(q domain.Question, v domain.Value) (float64, error) {
	if err := q.ValidateAnswer(v); err != nil {
		return 0, err
	}

	switch q.Kind {
	case domain.KindLikert, domain.KindSlider:
		n, _ := v.Number()
		lo, hi := q.Bounds()
		return clamp((n-lo)/(hi-lo)*100, 0, 100), nil
	case domain.KindMultipleChoice:
		id, _ := v.OptionID()
		if correct, ok := q.CorrectOption(); ok {
			if correct.ID == id {
				return 100, nil
			}
			return 0, nil
		}
		return optionPoints(q, id), nil
	case domain.KindScenario:
		id, _ := v.OptionID()
		return optionPoints(q, id), nil
	case domain.KindYesNo:
		if id, _ := v.OptionID(); id == domain.AnswerYes {
			return 100, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("normalize %s: unsupported kind %q", q.ID, q.Kind)
	}
}

// optionPoints reads an option's quality score, rescaling ordinal
// 1..MaxPoints scales onto 0..100.
func optionPoints(q domain.Question, id string) float64 {
	opt, _ := q.Option(id)
	if q.MaxPoints > 0 {
		return clamp((opt.Points-1)/(q.MaxPoints-1)*100, 0, 100)
	}
	return clamp(opt.Points, 0, 100)
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
