package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"career-fit-service/internal/domain"
	"career-fit-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	var ids []string
	for _, a := range c.List() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"aws-cloud", "cybersecurity", "data-science", "python-developer", "snowflake"}, ids)

	tests := []struct {
		id         string
		weights    domain.Weights
		thresholds domain.Thresholds
	}{
		{"aws-cloud", domain.DefaultWeights(), domain.Thresholds{Yes: 75, Maybe: 60}},
		{"cybersecurity", domain.Weights{Psychological: 0.3, Technical: 0.4, Wiscar: 0.3}, domain.Thresholds{Yes: 75, Maybe: 60}},
		{"data-science", domain.Weights{Psychological: 0.4, Technical: 0.3, Wiscar: 0.3}, domain.Thresholds{Yes: 75, Maybe: 55}},
		{"python-developer", domain.Weights{Psychological: 0.3, Technical: 0.4, Wiscar: 0.3}, domain.Thresholds{Yes: 80, Maybe: 55}},
		{"snowflake", domain.DefaultWeights(), domain.Thresholds{Yes: 80, Maybe: 55}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a, err := c.LoadAssessment(context.Background(), tt.id)
			require.NoError(t, err)
			assert.InDelta(t, tt.weights.Psychological, a.EffectiveWeights().Psychological, 1e-9)
			assert.InDelta(t, tt.weights.Technical, a.EffectiveWeights().Technical, 1e-9)
			assert.InDelta(t, tt.weights.Wiscar, a.EffectiveWeights().Wiscar, 1e-9)
			assert.Equal(t, tt.thresholds, a.EffectiveThresholds())
			assert.NotEmpty(t, a.Roles)
			for _, section := range domain.Sections() {
				assert.NotEmpty(t, a.QuestionIDs(section), "section %s", section)
			}
		})
	}
}

func TestBuiltinAssessmentsScoreEndToEnd(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	for _, a := range c.List() {
		t.Run(a.ID, func(t *testing.T) {
			best, err := scoring.Compute(a, answerAll(a, true), domain.Overrides{})
			require.NoError(t, err)
			assert.Equal(t, 100, best.OverallScore)
			assert.Equal(t, domain.TierYes, best.Recommendation)
			assert.Equal(t, a.NextSteps[domain.TierYes], best.NextSteps)
			require.Len(t, best.CareerMatches, len(a.Roles))

			worst, err := scoring.Compute(a, answerAll(a, false), domain.Overrides{})
			require.NoError(t, err)
			assert.Equal(t, domain.TierNo, worst.Recommendation)
			assert.Less(t, worst.OverallScore, a.EffectiveThresholds().Maybe)
		})
	}
}

func TestLoadAssessmentUnknown(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	_, err = c.LoadAssessment(context.Background(), "astronaut")
	assert.True(t, errors.Is(err, domain.ErrAssessmentNotFound))
}

func TestDecodeRejectsSchemaViolation(t *testing.T) {
	doc := strings.Replace(builtinDoc(t, "aws-cloud.yaml"), "kind: slider", "kind: essay", 1)

	_, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "document", cfgErr.Field)
}

func TestDecodeRejectsInvalidConfiguration(t *testing.T) {
	doc := strings.Replace(builtinDoc(t, "data-science.yaml"), "psychological: 0.4", "psychological: 0.5", 1)

	_, err := Decode([]byte(doc))
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "weights", cfgErr.Field)
}

func TestLoadDirFindsNestedDocuments(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "beta", "cloud")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	doc := strings.Replace(builtinDoc(t, "aws-cloud.yaml"), "id: aws-cloud\n", "id: aws-cloud-beta\n", 1)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "aws-beta.yml"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a bank"), 0o644))

	extra, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, 1, extra.Len())

	builtin, err := Builtin()
	require.NoError(t, err)
	merged := builtin.Merge(extra)
	assert.Equal(t, 6, merged.Len())

	a, err := merged.LoadAssessment(context.Background(), "aws-cloud-beta")
	require.NoError(t, err)
	assert.Equal(t, "AWS Cloud Career Fit", a.Title)
}

func TestLoadDirRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	doc := builtinDoc(t, "python-developer.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(doc), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "b.yaml")
}

func builtinDoc(t *testing.T, name string) string {
	t.Helper()
	data, err := fs.ReadFile(builtinFS, "assessments/"+name)
	require.NoError(t, err)
	return string(data)
}

// answerAll picks the highest (or lowest) scoring answer for every question.
func answerAll(a domain.Assessment, best bool) scoring.Answers {
	answers := scoring.Answers{}
	for _, q := range a.Questions {
		switch q.Kind {
		case domain.KindLikert, domain.KindSlider:
			lo, hi := q.Bounds()
			if best {
				answers[q.ID] = domain.NumberValue(hi)
			} else {
				answers[q.ID] = domain.NumberValue(lo)
			}
		case domain.KindYesNo:
			if best {
				answers[q.ID] = domain.OptionValue(domain.AnswerYes)
			} else {
				answers[q.ID] = domain.OptionValue(domain.AnswerNo)
			}
		case domain.KindMultipleChoice, domain.KindScenario:
			answers[q.ID] = domain.OptionValue(pickOption(q, best))
		}
	}
	return answers
}

func pickOption(q domain.Question, best bool) string {
	if correct, ok := q.CorrectOption(); ok {
		if best {
			return correct.ID
		}
		for _, opt := range q.Options {
			if !opt.Correct {
				return opt.ID
			}
		}
	}
	pick := q.Options[0]
	for _, opt := range q.Options[1:] {
		if (best && opt.Points > pick.Points) || (!best && opt.Points < pick.Points) {
			pick = opt
		}
	}
	return pick.ID
}
