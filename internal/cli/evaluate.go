package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"career-fit-service/internal/app"
	"career-fit-service/internal/domain"
	"career-fit-service/internal/scoring"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewEvaluateCmd scores a YAML answer sheet offline against one assessment.
func NewEvaluateCmd(configPath *string) *cobra.Command {
	var (
		assessmentID string
		answersPath  string
		yesBound     int
		maybeBound   int
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score an answer sheet and print the recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			banks, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}
			a, err := banks.LoadAssessment(cmd.Context(), assessmentID)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(answersPath)
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			store, err := recordAnswers(a, data)
			if err != nil {
				return err
			}

			var overrides domain.Overrides
			if cmd.Flags().Changed("yes") || cmd.Flags().Changed("maybe") {
				th := a.EffectiveThresholds()
				if cmd.Flags().Changed("yes") {
					th.Yes = yesBound
				}
				if cmd.Flags().Changed("maybe") {
					th.Maybe = maybeBound
				}
				overrides.Thresholds = &th
			}

			result, err := scoring.Compute(a, store, overrides)
			if err != nil {
				return err
			}
			renderResult(cmd.OutOrStdout(), a, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&assessmentID, "assessment", "", "assessment id")
	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file mapping question ids to answers")
	cmd.Flags().IntVar(&yesBound, "yes", 0, "override the Yes threshold")
	cmd.Flags().IntVar(&maybeBound, "maybe", 0, "override the Maybe threshold")
	_ = cmd.MarkFlagRequired("assessment")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

// recordAnswers decodes a question-id to answer map and records it in a
// fresh response store. Numbers become numeric answers, strings option ids.
func recordAnswers(a domain.Assessment, data []byte) (*app.ResponseStore, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	store := app.NewResponseStore(a)
	for _, id := range ids {
		var value domain.Value
		switch v := raw[id].(type) {
		case int:
			value = domain.NumberValue(float64(v))
		case float64:
			value = domain.NumberValue(v)
		case string:
			value = domain.OptionValue(v)
		case bool:
			// unquoted true/false on a yes/no question
			if v {
				value = domain.OptionValue(domain.AnswerYes)
			} else {
				value = domain.OptionValue(domain.AnswerNo)
			}
		default:
			return nil, &domain.InvalidResponseError{QuestionID: id, Value: fmt.Sprint(v), Reason: "unsupported answer type"}
		}
		if err := store.Record(id, value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Width(22)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func tierStyle(t domain.Tier) lipgloss.Style {
	switch t {
	case domain.TierYes:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	case domain.TierMaybe:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	}
}

func renderBar(score int) string {
	const barWidth = 20
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func scoreLine(label string, score int) string {
	return fmt.Sprintf("%s %s %3d", labelStyle.Render(label), renderBar(score), score)
}

func renderResult(w io.Writer, a domain.Assessment, r domain.AssessmentResult) {
	lines := []string{
		titleStyle.Render(a.Title),
		"",
		scoreLine("Psychological fit", r.PsychologicalFit.Score),
		scoreLine("Technical readiness", r.TechnicalReadiness.Score),
		scoreLine("WISCAR", r.Wiscar.Overall),
	}
	wiscar := []struct {
		label string
		score domain.CategoryScore
	}{
		{"  Will", r.Wiscar.Will},
		{"  Interest", r.Wiscar.Interest},
		{"  Skill", r.Wiscar.Skill},
		{"  Cognitive", r.Wiscar.Cognitive},
		{"  Ability", r.Wiscar.Ability},
		{"  Real world", r.Wiscar.RealWorld},
	}
	for _, d := range wiscar {
		lines = append(lines, scoreLine(d.label, d.score.Score))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%s %d", labelStyle.Render("Overall"), r.OverallScore),
		fmt.Sprintf("%s %s", labelStyle.Render("Recommendation"), tierStyle(r.Recommendation).Render(string(r.Recommendation))),
		dimStyle.Render(fmt.Sprintf("thresholds yes>=%d maybe>=%d", r.Thresholds.Yes, r.Thresholds.Maybe)),
	)

	if len(r.CareerMatches) > 0 {
		lines = append(lines, "", titleStyle.Render("Career matches"))
		for _, m := range r.CareerMatches {
			lines = append(lines, fmt.Sprintf("  %-28s %3d%%", m.Role, m.MatchPercent))
		}
	}
	lines = append(lines, "", titleStyle.Render("Next steps"))
	for _, step := range r.NextSteps {
		lines = append(lines, "  - "+step)
	}

	fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n")))
}
