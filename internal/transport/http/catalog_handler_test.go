package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"

	"career-fit-service/internal/domain"
)

type staticLister map[string]domain.Assessment

func (l staticLister) ListAssessments(context.Context) ([]domain.Assessment, error) {
	out := make([]domain.Assessment, 0, len(l))
	for _, a := range l {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func TestCatalogList(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/assessments")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var summaries []assessmentSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "cloud-basics" || summaries[0].QuestionCount != 8 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestCatalogGetHidesAnswerKey(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/assessments/cloud-basics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if strings.Contains(string(body), "correct") || strings.Contains(string(body), "points") {
		t.Fatalf("answer key leaked: %s", body)
	}

	var view assessmentView
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Sections) != 3 || len(view.Sections[2].Questions) != 6 {
		t.Fatalf("unexpected sections: %+v", view.Sections)
	}
	p1 := view.Sections[0].Questions[0]
	if p1.Min == nil || *p1.Min != 1 || p1.Max == nil || *p1.Max != 5 {
		t.Fatalf("expected likert bounds 1..5, got %+v", p1)
	}
}

func TestCatalogGetUnknown(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/assessments/astronaut")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Code != domain.ErrCodeAssessmentNotFound {
		t.Fatalf("expected ASSESSMENT_NOT_FOUND, got %+v", payload)
	}
}
