package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Section groups categories into the pages a respondent walks through.
type Section string

const (
	SectionPsychological Section = "psychological"
	SectionTechnical     Section = "technical"
	SectionWiscar        Section = "wiscar"
)

// Sections returns the sections in presentation order.
func Sections() []Section {
	return []Section{SectionPsychological, SectionTechnical, SectionWiscar}
}

// ParseSection validates a section name received from a client.
func ParseSection(raw string) (Section, error) {
	for _, s := range Sections() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSectionNotFound, raw)
}

// Category partitions responses before scoring.
type Category string

const (
	CategoryPsychological   Category = "psychological"
	CategoryTechnical       Category = "technical"
	CategoryWiscarWill      Category = "wiscar_will"
	CategoryWiscarInterest  Category = "wiscar_interest"
	CategoryWiscarSkill     Category = "wiscar_skill"
	CategoryWiscarCognitive Category = "wiscar_cognitive"
	CategoryWiscarAbility   Category = "wiscar_ability"
	CategoryWiscarRealWorld Category = "wiscar_real_world"
)

// WiscarCategories returns the six WISCAR dimensions in W, I, S, C, A, R order.
func WiscarCategories() []Category {
	return []Category{
		CategoryWiscarWill,
		CategoryWiscarInterest,
		CategoryWiscarSkill,
		CategoryWiscarCognitive,
		CategoryWiscarAbility,
		CategoryWiscarRealWorld,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPsychological, CategoryTechnical:
		return true
	}
	for _, w := range WiscarCategories() {
		if c == w {
			return true
		}
	}
	return false
}

// Section returns the section a category is presented in.
func (c Category) Section() Section {
	switch c {
	case CategoryPsychological:
		return SectionPsychological
	case CategoryTechnical:
		return SectionTechnical
	default:
		return SectionWiscar
	}
}

// QuestionKind selects how an answer is validated and normalized.
type QuestionKind string

const (
	KindLikert         QuestionKind = "likert"
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindSlider         QuestionKind = "slider"
	KindScenario       QuestionKind = "scenario"
	KindYesNo          QuestionKind = "yes_no"
)

// Option represents a selectable answer for choice questions.
type Option struct {
	ID      string  `json:"id" yaml:"id"`
	Label   string  `json:"label" yaml:"label"`
	Points  float64 `json:"points,omitempty" yaml:"points,omitempty"`
	Correct bool    `json:"correct,omitempty" yaml:"correct,omitempty"`
}

// Question is one item in an assessment bank.
type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Prompt      string       `json:"prompt" yaml:"prompt"`
	Kind        QuestionKind `json:"kind" yaml:"kind"`
	Category    Category     `json:"category" yaml:"category"`
	Subcategory string       `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	// Min and Max bound Likert and Slider answers. Likert defaults to 1..5.
	Min float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// MaxPoints marks scenario options as an ordinal 1..MaxPoints scale.
	MaxPoints float64  `json:"maxPoints,omitempty" yaml:"maxPoints,omitempty"`
	Weight    float64  `json:"weight,omitempty" yaml:"weight,omitempty"` // defaults to 1 if zero
	Options   []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Bounds returns the numeric answer range for Likert and Slider questions.
func (q Question) Bounds() (float64, float64) {
	if q.Kind == KindLikert && q.Min == 0 && q.Max == 0 {
		return 1, 5
	}
	return q.Min, q.Max
}

// EffectiveWeight returns the question weight within its category.
func (q Question) EffectiveWeight() float64 {
	if q.Weight == 0 {
		return 1
	}
	return q.Weight
}

// Option looks up a declared option by id.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the option flagged correct, if any.
func (q Question) CorrectOption() (Option, bool) {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt, true
		}
	}
	return Option{}, false
}

// Yes/no questions accept exactly these option ids.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Value is an answer: a number for Likert/Slider or an option id for choice kinds.
type Value struct {
	number   float64
	option   string
	isNumber bool
}

// NumberValue wraps a numeric answer.
func NumberValue(v float64) Value {
	return Value{number: v, isNumber: true}
}

// OptionValue wraps a choice answer.
func OptionValue(id string) Value {
	return Value{option: id}
}

// Number returns the numeric answer and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	return v.number, v.isNumber
}

// OptionID returns the chosen option and whether the value is a choice.
func (v Value) OptionID() (string, bool) {
	return v.option, !v.isNumber
}

func (v Value) String() string {
	if v.isNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.option
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.option)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer value must be a number or a string: %w", err)
	}
	*v = OptionValue(s)
	return nil
}

// Response records the current answer to one question.
type Response struct {
	QuestionID string `json:"questionId"`
	Value      Value  `json:"value"`
}

// SubcategoryScore is a display-only breakdown row.
type SubcategoryScore struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// CategoryScore is the 0..100 result for one category.
type CategoryScore struct {
	Category      Category           `json:"category"`
	Score         int                `json:"score"`
	AnsweredCount int                `json:"answeredCount"`
	TotalCount    int                `json:"totalCount"`
	Breakdown     []SubcategoryScore `json:"breakdown,omitempty"`
}

// WiscarProfile holds the six WISCAR dimensions and their rounded mean.
type WiscarProfile struct {
	Will      CategoryScore `json:"will"`
	Interest  CategoryScore `json:"interest"`
	Skill     CategoryScore `json:"skill"`
	Cognitive CategoryScore `json:"cognitive"`
	Ability   CategoryScore `json:"ability"`
	RealWorld CategoryScore `json:"realWorld"`
	Overall   int           `json:"overall"`
}

// Dimensions returns the six scores in W, I, S, C, A, R order.
func (p WiscarProfile) Dimensions() []CategoryScore {
	return []CategoryScore{p.Will, p.Interest, p.Skill, p.Cognitive, p.Ability, p.RealWorld}
}

// Tier is the final recommendation.
type Tier string

const (
	TierYes   Tier = "Yes"
	TierMaybe Tier = "Maybe"
	TierNo    Tier = "No"
)

// Tiers returns all tiers from highest to lowest.
func Tiers() []Tier {
	return []Tier{TierYes, TierMaybe, TierNo}
}

// Rank orders tiers so that a higher recommendation compares greater.
func (t Tier) Rank() int {
	switch t {
	case TierYes:
		return 2
	case TierMaybe:
		return 1
	default:
		return 0
	}
}

// Component names a score that role rules can draw from.
type Component string

const (
	ComponentPsychological Component = "psychological"
	ComponentTechnical     Component = "technical"
	ComponentWiscar        Component = "wiscar"
	ComponentOverall       Component = "overall"
)

// Weights combine the three component scores into the overall score.
type Weights struct {
	Psychological float64 `json:"psychological" yaml:"psychological"`
	Technical     float64 `json:"technical" yaml:"technical"`
	Wiscar        float64 `json:"wiscar" yaml:"wiscar"`
}

// DefaultWeights weighs every component equally.
func DefaultWeights() Weights {
	return Weights{Psychological: 1.0 / 3, Technical: 1.0 / 3, Wiscar: 1.0 / 3}
}

// Thresholds are the inclusive lower bounds of the Yes and Maybe tiers.
type Thresholds struct {
	Yes   int `json:"yes" yaml:"yes"`
	Maybe int `json:"maybe" yaml:"maybe"`
}

// DefaultThresholds returns the 75/60 cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{Yes: 75, Maybe: 60}
}

// RoleRule declares how a role's match percent is derived.
type RoleRule struct {
	Role    string    `json:"role" yaml:"role"`
	Source  Component `json:"source" yaml:"source"`
	Floor   int       `json:"floor" yaml:"floor"`
	Penalty int       `json:"penalty" yaml:"penalty"`
}

// CareerMatch is one ranked role suggestion.
type CareerMatch struct {
	Role         string `json:"role"`
	MatchPercent int    `json:"matchPercent"`
}

// Overrides replace an assessment's weights or thresholds for one computation.
type Overrides struct {
	Weights    *Weights    `json:"weights,omitempty"`
	Thresholds *Thresholds `json:"thresholds,omitempty"`
}

// Assessment is the full configuration record for one career-fit quiz.
type Assessment struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question        `json:"questions" yaml:"questions"`
	Weights     *Weights          `json:"weights,omitempty" yaml:"weights,omitempty"`
	Thresholds  *Thresholds       `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Roles       []RoleRule        `json:"roles" yaml:"roles"`
	NextSteps   map[Tier][]string `json:"nextSteps" yaml:"nextSteps"`
}

// Question looks up a question by id.
func (a Assessment) Question(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionIDs returns the ids of every question presented in section.
func (a Assessment) QuestionIDs(section Section) []string {
	var ids []string
	for _, q := range a.Questions {
		if q.Category.Section() == section {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// EffectiveWeights returns the configured weights or the defaults.
func (a Assessment) EffectiveWeights() Weights {
	if a.Weights != nil {
		return *a.Weights
	}
	return DefaultWeights()
}

// EffectiveThresholds returns the configured thresholds or the defaults.
func (a Assessment) EffectiveThresholds() Thresholds {
	if a.Thresholds != nil {
		return *a.Thresholds
	}
	return DefaultThresholds()
}

// AssessmentResult is produced once per session and never mutated.
type AssessmentResult struct {
	AssessmentID       string        `json:"assessmentId"`
	PsychologicalFit   CategoryScore `json:"psychologicalFit"`
	TechnicalReadiness CategoryScore `json:"technicalReadiness"`
	Wiscar             WiscarProfile `json:"wiscar"`
	OverallScore       int           `json:"overallScore"`
	Recommendation     Tier          `json:"recommendation"`
	CareerMatches      []CareerMatch `json:"careerMatches"`
	NextSteps          []string      `json:"nextSteps"`
	Weights            Weights       `json:"weights"`
	Thresholds         Thresholds    `json:"thresholds"`
}
