package domain

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// ValidateAnswer checks v against the question's declared domain.
func (q Question) ValidateAnswer(v Value) error {
	reject := func(reason string) error {
		return &InvalidResponseError{QuestionID: q.ID, Value: v.String(), Reason: reason}
	}

	switch q.Kind {
	case KindLikert, KindSlider:
		n, ok := v.Number()
		if !ok {
			return reject("expected a number")
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return reject("not a finite number")
		}
		lo, hi := q.Bounds()
		if n < lo || n > hi {
			return reject(fmt.Sprintf("outside [%g, %g]", lo, hi))
		}
		if q.Kind == KindLikert && n != math.Trunc(n) {
			return reject("likert answers must be whole scale points")
		}
	case KindMultipleChoice, KindScenario:
		id, ok := v.OptionID()
		if !ok {
			return reject("expected an option id")
		}
		if _, found := q.Option(id); !found {
			return reject("not a declared option")
		}
	case KindYesNo:
		id, ok := v.OptionID()
		if !ok || (id != AnswerYes && id != AnswerNo) {
			return reject(`expected "yes" or "no"`)
		}
	default:
		return reject(fmt.Sprintf("unsupported question kind %q", q.Kind))
	}
	return nil
}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	parts := []struct {
		field string
		value float64
	}{
		{"weights.psychological", w.Psychological},
		{"weights.technical", w.Technical},
		{"weights.wiscar", w.Wiscar},
	}
	for _, p := range parts {
		if p.value < 0 || math.IsNaN(p.value) {
			return &ConfigurationError{Field: p.field, Reason: "must be non-negative"}
		}
	}
	sum := w.Psychological + w.Technical + w.Wiscar
	if math.Abs(sum-1) > weightTolerance {
		return &ConfigurationError{Field: "weights", Reason: fmt.Sprintf("must sum to 1, got %g", sum)}
	}
	return nil
}

// Validate checks both cut points lie in 0..100 and Maybe does not exceed Yes.
func (t Thresholds) Validate() error {
	if t.Yes < 0 || t.Yes > 100 {
		return &ConfigurationError{Field: "thresholds.yes", Reason: "must be within 0..100"}
	}
	if t.Maybe < 0 || t.Maybe > 100 {
		return &ConfigurationError{Field: "thresholds.maybe", Reason: "must be within 0..100"}
	}
	if t.Maybe > t.Yes {
		return &ConfigurationError{
			Field:  "thresholds",
			Reason: fmt.Sprintf("maybe bound %d exceeds yes bound %d", t.Maybe, t.Yes),
		}
	}
	return nil
}

// Validate checks one role rule.
func (r RoleRule) Validate() error {
	if r.Role == "" {
		return &ConfigurationError{Field: "roles", Reason: "role name is required"}
	}
	switch r.Source {
	case ComponentPsychological, ComponentTechnical, ComponentWiscar, ComponentOverall:
	default:
		return &ConfigurationError{Field: "roles." + r.Role, Reason: fmt.Sprintf("unknown source %q", r.Source)}
	}
	if r.Floor < 0 || r.Floor > 100 {
		return &ConfigurationError{Field: "roles." + r.Role, Reason: "floor must be within 0..100"}
	}
	if r.Penalty < 0 || r.Penalty > 100 {
		return &ConfigurationError{Field: "roles." + r.Role, Reason: "penalty must be within 0..100"}
	}
	return nil
}

// Validate checks one question definition.
func (q Question) Validate() error {
	field := "questions." + q.ID
	if q.ID == "" {
		return &ConfigurationError{Field: "questions", Reason: "question id is required"}
	}
	if !q.Category.Valid() {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("unknown category %q", q.Category)}
	}
	if q.Weight < 0 {
		return &ConfigurationError{Field: field, Reason: "weight must be non-negative"}
	}

	switch q.Kind {
	case KindLikert, KindSlider:
		lo, hi := q.Bounds()
		if lo >= hi {
			return &ConfigurationError{Field: field, Reason: "min must be below max"}
		}
	case KindMultipleChoice:
		if len(q.Options) < 2 {
			return &ConfigurationError{Field: field, Reason: "needs at least two options"}
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.Correct {
				correct++
			}
		}
		if correct > 1 {
			return &ConfigurationError{Field: field, Reason: "at most one option may be correct"}
		}
		if correct == 0 {
			if err := q.validatePoints(field); err != nil {
				return err
			}
		}
	case KindScenario:
		if len(q.Options) < 2 {
			return &ConfigurationError{Field: field, Reason: "needs at least two options"}
		}
		if err := q.validatePoints(field); err != nil {
			return err
		}
	case KindYesNo:
		if len(q.Options) > 0 {
			return &ConfigurationError{Field: field, Reason: "yes/no questions do not declare options"}
		}
	default:
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("unknown kind %q", q.Kind)}
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return &ConfigurationError{Field: field, Reason: "option id is required"}
		}
		if _, dup := seen[opt.ID]; dup {
			return &ConfigurationError{Field: field, Reason: fmt.Sprintf("duplicate option %q", opt.ID)}
		}
		seen[opt.ID] = struct{}{}
	}
	return nil
}

func (q Question) validatePoints(field string) error {
	lo, hi := 0.0, 100.0
	if q.MaxPoints > 0 {
		if q.MaxPoints < 2 {
			return &ConfigurationError{Field: field, Reason: "maxPoints must be at least 2"}
		}
		lo, hi = 1, q.MaxPoints
	}
	for _, opt := range q.Options {
		if opt.Points < lo || opt.Points > hi {
			return &ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("option %q points %g outside [%g, %g]", opt.ID, opt.Points, lo, hi),
			}
		}
	}
	return nil
}

// Validate checks the whole assessment record at load time.
func (a Assessment) Validate() error {
	if a.ID == "" {
		return &ConfigurationError{Field: "id", Reason: "assessment id is required"}
	}

	seen := make(map[string]struct{}, len(a.Questions))
	covered := make(map[Category]bool)
	for _, q := range a.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return &ConfigurationError{Field: "questions." + q.ID, Reason: "duplicate question id"}
		}
		seen[q.ID] = struct{}{}
		covered[q.Category] = true
	}

	required := append([]Category{CategoryPsychological, CategoryTechnical}, WiscarCategories()...)
	for _, c := range required {
		if !covered[c] {
			return &ConfigurationError{Field: "questions", Reason: fmt.Sprintf("no questions for category %s", c)}
		}
	}

	if err := a.EffectiveWeights().Validate(); err != nil {
		return err
	}
	if err := a.EffectiveThresholds().Validate(); err != nil {
		return err
	}
	for _, r := range a.Roles {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, tier := range Tiers() {
		if len(a.NextSteps[tier]) == 0 {
			return &ConfigurationError{Field: "nextSteps." + string(tier), Reason: "at least one step is required"}
		}
	}
	return nil
}
