package domain

import (
	"errors"
	"testing"
)

func validAssessment() Assessment {
	a := Assessment{
		ID:    "sample",
		Title: "Sample",
		Roles: []RoleRule{{Role: "Analyst", Source: ComponentOverall, Floor: 40, Penalty: 10}},
		NextSteps: map[Tier][]string{
			TierYes:   {"Apply for junior roles"},
			TierMaybe: {"Strengthen the basics"},
			TierNo:    {"Look at related paths"},
		},
	}
	categories := append([]Category{CategoryPsychological, CategoryTechnical}, WiscarCategories()...)
	for _, c := range categories {
		a.Questions = append(a.Questions, Question{ID: string(c), Kind: KindLikert, Category: c})
	}
	return a
}

func TestAssessmentValidate(t *testing.T) {
	if err := validAssessment().Validate(); err != nil {
		t.Fatalf("expected valid assessment, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(a *Assessment)
	}{
		{"duplicate question", func(a *Assessment) { a.Questions = append(a.Questions, a.Questions[0]) }},
		{"missing category", func(a *Assessment) { a.Questions = a.Questions[1:] }},
		{"unknown category", func(a *Assessment) { a.Questions[0].Category = "vibes" }},
		{"weights off", func(a *Assessment) { a.Weights = &Weights{Psychological: 0.5, Technical: 0.5, Wiscar: 0.5} }},
		{"maybe above yes", func(a *Assessment) { a.Thresholds = &Thresholds{Yes: 55, Maybe: 75} }},
		{"unknown role source", func(a *Assessment) { a.Roles[0].Source = "luck" }},
		{"missing next steps", func(a *Assessment) { delete(a.NextSteps, TierNo) }},
		{"slider without range", func(a *Assessment) { a.Questions[1].Kind = KindSlider }},
		{"scenario points off scale", func(a *Assessment) {
			a.Questions[1] = Question{
				ID: "sc", Kind: KindScenario, Category: CategoryTechnical, MaxPoints: 4,
				Options: []Option{{ID: "a", Points: 1}, {ID: "b", Points: 5}},
			}
		}},
		{"two correct options", func(a *Assessment) {
			a.Questions[1] = Question{
				ID: "mc", Kind: KindMultipleChoice, Category: CategoryTechnical,
				Options: []Option{{ID: "a", Correct: true}, {ID: "b", Correct: true}},
			}
		}},
		{"yes/no with options", func(a *Assessment) {
			a.Questions[1] = Question{ID: "yn", Kind: KindYesNo, Category: CategoryTechnical, Options: []Option{{ID: "y"}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssessment()
			tt.mutate(&a)
			err := a.Validate()
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) || cfgErr.Field == "" {
				t.Fatalf("expected field-level detail, got %v", err)
			}
		})
	}
}

func TestThresholdsValidate(t *testing.T) {
	for _, ok := range []Thresholds{{75, 60}, {75, 55}, {80, 55}, {70, 70}} {
		if err := ok.Validate(); err != nil {
			t.Errorf("thresholds %+v: unexpected error %v", ok, err)
		}
	}
	for _, bad := range []Thresholds{{60, 75}, {101, 60}, {75, -1}} {
		if err := bad.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("thresholds %+v: expected configuration error, got %v", bad, err)
		}
	}
}

func TestValueJSON(t *testing.T) {
	var n Value
	if err := n.UnmarshalJSON([]byte(`4`)); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if got, ok := n.Number(); !ok || got != 4 {
		t.Fatalf("expected number 4, got %v (%v)", got, ok)
	}

	var s Value
	if err := s.UnmarshalJSON([]byte(`"opt-b"`)); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if got, ok := s.OptionID(); !ok || got != "opt-b" {
		t.Fatalf("expected option opt-b, got %q (%v)", got, ok)
	}

	var bad Value
	if err := bad.UnmarshalJSON([]byte(`{"x":1}`)); err == nil {
		t.Fatalf("expected error for object value")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(&InvalidResponseError{QuestionID: "q"}); got != ErrCodeInvalidResponse {
		t.Errorf("got %s", got)
	}
	if got := CodeOf(&NoDataError{Category: CategoryTechnical}); got != ErrCodeNoDataForCategory {
		t.Errorf("got %s", got)
	}
	if got := CodeOf(&ConfigurationError{Field: "weights"}); got != ErrCodeConfiguration {
		t.Errorf("got %s", got)
	}
	if got := CodeOf(errors.New("boom")); got != ErrCodeInternal {
		t.Errorf("got %s", got)
	}
}
