package app

import (
	"fmt"

	"career-fit-service/internal/domain"
)

// ResponseStore owns every answer recorded during one session. Record is the
// only mutation; later answers to the same question replace earlier ones.
// It is not safe for concurrent use; Session serializes access.
type ResponseStore struct {
	assessment domain.Assessment
	values     map[string]domain.Value
}

// NewResponseStore returns an empty store that validates against a's bank.
func NewResponseStore(a domain.Assessment) *ResponseStore {
	return &ResponseStore{
		assessment: a,
		values:     make(map[string]domain.Value),
	}
}

// Record upserts the answer for questionID. Out-of-domain values are rejected
// and leave any previous answer untouched.
func (s *ResponseStore) Record(questionID string, value domain.Value) error {
	q, ok := s.assessment.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	if err := q.ValidateAnswer(value); err != nil {
		return err
	}
	s.values[questionID] = value
	return nil
}

// Answer returns the current value for questionID.
func (s *ResponseStore) Answer(questionID string) (domain.Value, bool) {
	v, ok := s.values[questionID]
	return v, ok
}

// AllAnswered reports whether every id has a recorded response.
func (s *ResponseStore) AllAnswered(questionIDs []string) bool {
	for _, id := range questionIDs {
		if _, ok := s.values[id]; !ok {
			return false
		}
	}
	return true
}
