package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"career-fit-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// AssessmentLoader fetches assessment banks from a backing store (catalog, Postgres).
type AssessmentLoader interface {
	LoadAssessment(ctx context.Context, assessmentID string) (domain.Assessment, error)
}

// AssessmentRepository caches assessments with TTL to avoid repeated loads.
type AssessmentRepository struct {
	loader AssessmentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedAssessment
}

type cachedAssessment struct {
	assessment domain.Assessment
	expiresAt  time.Time
}

func NewAssessmentRepository(loader AssessmentLoader, ttl time.Duration) *AssessmentRepository {
	return &AssessmentRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedAssessment),
	}
}

func (r *AssessmentRepository) GetAssessment(ctx context.Context, assessmentID string) (domain.Assessment, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[assessmentID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.assessment, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(assessmentID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[assessmentID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.assessment, nil
		}
		r.mu.RUnlock()

		a, err := r.loader.LoadAssessment(ctx, assessmentID)
		if err != nil {
			return domain.Assessment{}, err
		}

		r.mu.Lock()
		r.cache[assessmentID] = cachedAssessment{
			assessment: a,
			expiresAt:  now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return domain.Assessment{}, err
	}
	return result.(domain.Assessment), nil
}

// StaticAssessmentLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticAssessmentLoader struct {
	assessments map[string]domain.Assessment
}

func NewStaticAssessmentLoader(assessments map[string]domain.Assessment) *StaticAssessmentLoader {
	return &StaticAssessmentLoader{assessments: assessments}
}

func (l *StaticAssessmentLoader) LoadAssessment(_ context.Context, assessmentID string) (domain.Assessment, error) {
	if a, ok := l.assessments[assessmentID]; ok {
		return a, nil
	}
	return domain.Assessment{}, domain.ErrAssessmentNotFound
}

func (r *AssessmentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
