package scoring_test

import (
	"errors"
	"testing"

	"career-fit-service/internal/domain"
	"career-fit-service/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	likert := domain.Question{ID: "l", Kind: domain.KindLikert, Category: domain.CategoryPsychological}
	slider := domain.Question{ID: "s", Kind: domain.KindSlider, Category: domain.CategoryWiscarSkill, Min: 0, Max: 10}
	ordinal := domain.Question{
		ID: "o", Kind: domain.KindScenario, Category: domain.CategoryWiscarCognitive, MaxPoints: 4,
		Options: []domain.Option{{ID: "1", Points: 1}, {ID: "2", Points: 2}, {ID: "4", Points: 4}},
	}
	direct := domain.Question{
		ID: "d", Kind: domain.KindScenario, Category: domain.CategoryWiscarRealWorld,
		Options: []domain.Option{{ID: "best", Points: 100}, {ID: "ok", Points: 70}, {ID: "poor", Points: 10}},
	}
	weightedChoice := domain.Question{
		ID: "m", Kind: domain.KindMultipleChoice, Category: domain.CategoryWiscarInterest,
		Options: []domain.Option{{ID: "x", Points: 60}, {ID: "y", Points: 20}},
	}
	yesNo := domain.Question{ID: "y", Kind: domain.KindYesNo, Category: domain.CategoryWiscarAbility}

	tests := []struct {
		name string
		q    domain.Question
		v    domain.Value
		want float64
	}{
		{"likert low", likert, domain.NumberValue(1), 0},
		{"likert neutral", likert, domain.NumberValue(3), 50},
		{"likert high", likert, domain.NumberValue(5), 100},
		{"slider mid", slider, domain.NumberValue(7.5), 75},
		{"mc correct", mcQuestion("t"), domain.OptionValue("a"), 100},
		{"mc wrong", mcQuestion("t"), domain.OptionValue("c"), 0},
		{"mc weighted option", weightedChoice, domain.OptionValue("x"), 60},
		{"scenario ordinal min", ordinal, domain.OptionValue("1"), 0},
		{"scenario ordinal max", ordinal, domain.OptionValue("4"), 100},
		{"scenario direct", direct, domain.OptionValue("ok"), 70},
		{"yes", yesNo, domain.OptionValue(domain.AnswerYes), 100},
		{"no", yesNo, domain.OptionValue(domain.AnswerNo), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoring.Normalize(tt.q, tt.v)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	got, err := scoring.Normalize(ordinal, domain.OptionValue("2"))
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3, got, 1e-9)
}

func TestNormalizeRejectsOutOfDomain(t *testing.T) {
	likert := domain.Question{ID: "l", Kind: domain.KindLikert, Category: domain.CategoryPsychological}
	slider := domain.Question{ID: "s", Kind: domain.KindSlider, Category: domain.CategoryWiscarSkill, Min: 0, Max: 10}

	tests := []struct {
		name string
		q    domain.Question
		v    domain.Value
	}{
		{"likert above scale", likert, domain.NumberValue(6)},
		{"likert below scale", likert, domain.NumberValue(0)},
		{"likert fractional", likert, domain.NumberValue(2.5)},
		{"likert string", likert, domain.OptionValue("agree")},
		{"slider above max", slider, domain.NumberValue(10.5)},
		{"unknown option", mcQuestion("t"), domain.OptionValue("z")},
		{"option as number", mcQuestion("t"), domain.NumberValue(1)},
		{"yes/no maybe", domain.Question{ID: "y", Kind: domain.KindYesNo}, domain.OptionValue("maybe")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoring.Normalize(tt.q, tt.v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidResponse), "got %v", err)

			var invalid *domain.InvalidResponseError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.q.ID, invalid.QuestionID)
		})
	}
}
