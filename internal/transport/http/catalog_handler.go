package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"career-fit-service/internal/app"
	"career-fit-service/internal/domain"
	"go.uber.org/zap"
)

// AssessmentLister enumerates the assessments a deployment offers.
type AssessmentLister interface {
	ListAssessments(ctx context.Context) ([]domain.Assessment, error)
}

// CatalogHandler serves read-only assessment metadata over plain HTTP.
// Correct options and option points are never exposed.
type CatalogHandler struct {
	lister      AssessmentLister
	assessments app.AssessmentRepository
	logger      *zap.Logger
}

func NewCatalogHandler(lister AssessmentLister, assessments app.AssessmentRepository, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{lister: lister, assessments: assessments, logger: logger}
}

type assessmentSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"questionCount"`
}

type publicOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type publicQuestion struct {
	ID          string              `json:"id"`
	Prompt      string              `json:"prompt"`
	Kind        domain.QuestionKind `json:"kind"`
	Category    domain.Category     `json:"category"`
	Subcategory string              `json:"subcategory,omitempty"`
	Min         *float64            `json:"min,omitempty"`
	Max         *float64            `json:"max,omitempty"`
	Options     []publicOption      `json:"options,omitempty"`
}

type publicSection struct {
	Section   domain.Section   `json:"section"`
	Questions []publicQuestion `json:"questions"`
}

type assessmentView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Sections    []publicSection `json:"sections"`
}

// Register mounts the catalog routes on mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /assessments", h.list)
	mux.HandleFunc("GET /assessments/{id}", h.get)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.lister.ListAssessments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]assessmentSummary, 0, len(items))
	for _, a := range items {
		out = append(out, assessmentSummary{
			ID:            a.ID,
			Title:         a.Title,
			Description:   a.Description,
			QuestionCount: len(a.Questions),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessments.GetAssessment(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssessmentView(a))
}

func newAssessmentView(a domain.Assessment) assessmentView {
	view := assessmentView{ID: a.ID, Title: a.Title, Description: a.Description}
	for _, section := range domain.Sections() {
		ps := publicSection{Section: section}
		for _, q := range a.Questions {
			if q.Category.Section() != section {
				continue
			}
			pq := publicQuestion{
				ID:          q.ID,
				Prompt:      q.Prompt,
				Kind:        q.Kind,
				Category:    q.Category,
				Subcategory: q.Subcategory,
			}
			if q.Kind == domain.KindLikert || q.Kind == domain.KindSlider {
				lo, hi := q.Bounds()
				pq.Min, pq.Max = &lo, &hi
			}
			if q.Kind == domain.KindYesNo {
				pq.Options = []publicOption{{ID: domain.AnswerYes, Label: "Yes"}, {ID: domain.AnswerNo, Label: "No"}}
			}
			for _, opt := range q.Options {
				pq.Options = append(pq.Options, publicOption{ID: opt.ID, Label: opt.Label})
			}
			ps.Questions = append(ps.Questions, pq)
		}
		view.Sections = append(view.Sections, ps)
	}
	return view
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("catalog request failed", zap.Error(err))
	}
	writeJSON(w, status, errorPayload{Code: domain.CodeOf(err), Message: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAssessmentNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
