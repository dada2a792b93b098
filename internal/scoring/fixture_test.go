package scoring_test

import (
	"career-fit-service/internal/domain"
	"career-fit-service/internal/scoring"
)

func mcQuestion(id string) domain.Question {
	return domain.Question{
		ID:       id,
		Kind:     domain.KindMultipleChoice,
		Category: domain.CategoryTechnical,
		Options: []domain.Option{
			{ID: "a", Label: "Right", Correct: true},
			{ID: "b", Label: "Wrong"},
			{ID: "c", Label: "Also wrong"},
		},
	}
}

func mixedAssessment() domain.Assessment {
	return domain.Assessment{
		ID:    "mixed",
		Title: "Mixed bank",
		Questions: []domain.Question{
			{ID: "p1", Kind: domain.KindLikert, Category: domain.CategoryPsychological, Subcategory: "Interest"},
			{ID: "p2", Kind: domain.KindLikert, Category: domain.CategoryPsychological, Subcategory: "Interest"},
			{ID: "p3", Kind: domain.KindLikert, Category: domain.CategoryPsychological, Subcategory: "Persistence"},
			mcQuestion("t1"),
			mcQuestion("t2"),
			mcQuestion("t3"),
			mcQuestion("t4"),
			{ID: "w1", Kind: domain.KindLikert, Category: domain.CategoryWiscarWill},
			{ID: "i1", Kind: domain.KindLikert, Category: domain.CategoryWiscarInterest},
			{ID: "s1", Kind: domain.KindSlider, Category: domain.CategoryWiscarSkill, Min: 0, Max: 10},
			{
				ID: "c1", Kind: domain.KindScenario, Category: domain.CategoryWiscarCognitive, MaxPoints: 4,
				Options: []domain.Option{
					{ID: "guess", Points: 1},
					{ID: "ask", Points: 2},
					{ID: "read", Points: 3},
					{ID: "debug", Points: 4},
				},
			},
			{ID: "a1", Kind: domain.KindYesNo, Category: domain.CategoryWiscarAbility},
			{ID: "r1", Kind: domain.KindLikert, Category: domain.CategoryWiscarRealWorld},
		},
		Roles: []domain.RoleRule{
			{Role: "Cloud Engineer", Source: domain.ComponentTechnical, Floor: 50, Penalty: 10},
			{Role: "Solutions Architect", Source: domain.ComponentOverall, Floor: 40, Penalty: 15},
			{Role: "DevOps Engineer", Source: domain.ComponentWiscar, Floor: 60, Penalty: 5},
		},
		NextSteps: map[domain.Tier][]string{
			domain.TierYes:   {"Book the associate certification"},
			domain.TierMaybe: {"Finish a fundamentals course"},
			domain.TierNo:    {"Explore adjacent roles"},
		},
	}
}

// sliderAssessment has one 0..100 slider per category so answers equal scores.
func sliderAssessment() domain.Assessment {
	a := domain.Assessment{
		ID:    "sliders",
		Title: "Slider bank",
		NextSteps: map[domain.Tier][]string{
			domain.TierYes:   {"advanced"},
			domain.TierMaybe: {"foundation"},
			domain.TierNo:    {"alternatives"},
		},
	}
	categories := append([]domain.Category{domain.CategoryPsychological, domain.CategoryTechnical}, domain.WiscarCategories()...)
	for _, c := range categories {
		a.Questions = append(a.Questions, domain.Question{
			ID:       string(c),
			Kind:     domain.KindSlider,
			Category: c,
			Min:      0,
			Max:      100,
		})
	}
	return a
}

func sliderAnswers(psychological, technical, wiscar float64) scoring.Answers {
	answers := scoring.Answers{
		string(domain.CategoryPsychological): domain.NumberValue(psychological),
		string(domain.CategoryTechnical):     domain.NumberValue(technical),
	}
	for _, c := range domain.WiscarCategories() {
		answers[string(c)] = domain.NumberValue(wiscar)
	}
	return answers
}

func uniformLikert(v float64) scoring.Answers {
	answers := scoring.Answers{
		"p1": domain.NumberValue(v),
		"p2": domain.NumberValue(v),
		"p3": domain.NumberValue(v),
		"w1": domain.NumberValue(v),
		"i1": domain.NumberValue(v),
		"r1": domain.NumberValue(v),
		"s1": domain.NumberValue((v - 1) / 4 * 10),
		"c1": domain.OptionValue("read"),
		"a1": domain.OptionValue(domain.AnswerYes),
	}
	for _, id := range []string{"t1", "t2", "t3", "t4"} {
		answers[id] = domain.OptionValue("a")
	}
	return answers
}
