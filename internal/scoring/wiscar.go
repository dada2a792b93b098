package scoring

import "career-fit-service/internal/domain"

// SynthesizeWiscar scores all six WISCAR dimensions from recorded answers.
// A dimension without answers fails the whole profile.
func SynthesizeWiscar(questions []domain.Question, answers AnswerSource) (domain.WiscarProfile, error) {
	dims := make([]domain.CategoryScore, 0, 6)
	sum := 0
	for _, category := range domain.WiscarCategories() {
		score, err := ScoreCategory(questions, answers, category)
		if err != nil {
			return domain.WiscarProfile{}, err
		}
		dims = append(dims, score)
		sum += score.Score
	}

	return domain.WiscarProfile{
		Will:      dims[0],
		Interest:  dims[1],
		Skill:     dims[2],
		Cognitive: dims[3],
		Ability:   dims[4],
		RealWorld: dims[5],
		Overall:   round(float64(sum) / float64(len(dims))),
	}, nil
}
