package scoring

import (
	"sort"

	"career-fit-service/internal/domain"
)

// ComponentScores are the inputs role rules draw from.
type ComponentScores struct {
	Psychological int
	Technical     int
	Wiscar        int
	Overall       int
}

func (c ComponentScores) get(source domain.Component) int {
	switch source {
	case domain.ComponentPsychological:
		return c.Psychological
	case domain.ComponentTechnical:
		return c.Technical
	case domain.ComponentWiscar:
		return c.Wiscar
	default:
		return c.Overall
	}
}

// MatchCareers ranks roles by max(floor, source - penalty), highest first.
// Ties keep declaration order.
func MatchCareers(rules []domain.RoleRule, scores ComponentScores) []domain.CareerMatch {
	matches := make([]domain.CareerMatch, 0, len(rules))
	for _, rule := range rules {
		pct := scores.get(rule.Source) - rule.Penalty
		if pct < rule.Floor {
			pct = rule.Floor
		}
		matches = append(matches, domain.CareerMatch{
			Role:         rule.Role,
			MatchPercent: clampInt(pct, 0, 100),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercent > matches[j].MatchPercent
	})
	return matches
}

// NextSteps returns a copy of the catalog entry for tier.
func NextSteps(catalog map[domain.Tier][]string, tier domain.Tier) []string {
	steps := catalog[tier]
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
