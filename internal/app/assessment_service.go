package app

import (
	"context"
	"sync"
	"time"

	"career-fit-service/internal/domain"
	"career-fit-service/internal/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository abstracts where live sessions are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// AssessmentRepository loads assessment banks (from cache/backing store).
type AssessmentRepository interface {
	GetAssessment(ctx context.Context, assessmentID string) (domain.Assessment, error)
}

// SectionInfo lists the questions a presentation layer renders on one page.
type SectionInfo struct {
	Section     domain.Section `json:"section"`
	QuestionIDs []string       `json:"questionIds"`
}

// SessionInfo is returned when a session starts or restarts.
type SessionInfo struct {
	SessionID    string        `json:"sessionId"`
	AssessmentID string        `json:"assessmentId"`
	Title        string        `json:"title"`
	Sections     []SectionInfo `json:"sections"`
}

// AnswerAck summarizes the section state after an accepted answer.
type AnswerAck struct {
	QuestionID      string         `json:"questionId"`
	Section         domain.Section `json:"section"`
	SectionComplete bool           `json:"sectionComplete"`
	Answered        int            `json:"answered"`
	Total           int            `json:"total"`
}

// SectionProgress reports answered/total counts for one section.
type SectionProgress struct {
	Section  domain.Section `json:"section"`
	Answered int            `json:"answered"`
	Total    int            `json:"total"`
	Complete bool           `json:"complete"`
}

// AssessmentService contains the assessment use cases: ingest, advance, finalize, restart.
type AssessmentService struct {
	sessions    SessionRepository
	assessments AssessmentRepository
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time
}

// Option customizes an AssessmentService.
type Option func(*AssessmentService)

// WithClock overrides the session clock; used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AssessmentService) { s.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *AssessmentService) { s.newID = newID }
}

func NewAssessmentService(store SessionRepository, assessments AssessmentRepository, logger *zap.Logger, opts ...Option) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AssessmentService{
		sessions:    store,
		assessments: assessments,
		logger:      logger,
		newID:       func() string { return uuid.NewString() },
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, a domain.Assessment) *Session {
	return newSession(id, a, time.Now)
}

// Start opens a fresh session with an empty response store.
func (s *AssessmentService) Start(ctx context.Context, assessmentID string) (SessionInfo, error) {
	a, err := s.assessments.GetAssessment(ctx, assessmentID)
	if err != nil {
		return SessionInfo{}, err
	}

	session := newSession(s.newID(), a, s.now)
	s.sessions.Put(session)
	s.logger.Info("assessment session started",
		zap.String("session_id", session.id),
		zap.String("assessment_id", a.ID),
		zap.Int("questions", len(a.Questions)),
	)
	return session.info(), nil
}

// SubmitAnswer records (or replaces) one answer. Invalid values are rejected
// and never recorded.
func (s *AssessmentService) SubmitAnswer(_ context.Context, sessionID, questionID string, value domain.Value) (AnswerAck, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return AnswerAck{}, domain.ErrSessionNotFound
	}

	ack, err := session.record(questionID, value)
	if err != nil {
		s.logger.Debug("answer rejected",
			zap.String("session_id", sessionID),
			zap.String("question_id", questionID),
			zap.Error(err),
		)
		return AnswerAck{}, err
	}
	return ack, nil
}

// IsSectionComplete reports whether every question in section has an answer.
// Presentation gates its "Next" button on this; the service never auto-advances.
func (s *AssessmentService) IsSectionComplete(_ context.Context, sessionID string, section domain.Section) (bool, error) {
	if _, err := domain.ParseSection(string(section)); err != nil {
		return false, err
	}
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return false, domain.ErrSessionNotFound
	}
	return session.sectionComplete(section), nil
}

// Progress reports per-section answer counts.
func (s *AssessmentService) Progress(_ context.Context, sessionID string) ([]SectionProgress, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.progress(), nil
}

// Finalize computes the session result once. Later calls return the same
// result; passing overrides to an already finalized session is an error.
func (s *AssessmentService) Finalize(_ context.Context, sessionID string, overrides domain.Overrides) (domain.AssessmentResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AssessmentResult{}, domain.ErrSessionNotFound
	}

	result, elapsed, fresh, err := session.finalize(overrides)
	if err != nil {
		s.logger.Warn("finalize failed",
			zap.String("session_id", sessionID),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err),
		)
		return domain.AssessmentResult{}, err
	}
	if fresh {
		s.logger.Info("assessment finalized",
			zap.String("session_id", sessionID),
			zap.String("assessment_id", result.AssessmentID),
			zap.Int("overall_score", result.OverallScore),
			zap.String("recommendation", string(result.Recommendation)),
			zap.Duration("elapsed", elapsed),
		)
	}
	return result, nil
}

// Restart opens a new session for the same assessment and then discards the
// old one. If the new session cannot be opened the old one is kept.
func (s *AssessmentService) Restart(ctx context.Context, sessionID string) (SessionInfo, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionInfo{}, domain.ErrSessionNotFound
	}
	info, err := s.Start(ctx, session.assessment.ID)
	if err != nil {
		return SessionInfo{}, err
	}
	s.sessions.Delete(sessionID)
	s.logger.Info("assessment session restarted",
		zap.String("previous_session_id", sessionID),
		zap.String("session_id", info.SessionID),
	)
	return info, nil
}

// End drops a session, e.g. when the client navigates away.
func (s *AssessmentService) End(_ context.Context, sessionID string) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return
	}
	s.sessions.Delete(sessionID)
	s.logger.Debug("assessment session ended", zap.String("session_id", sessionID))
}

// Session is the in-memory state of one respondent working through one assessment.
type Session struct {
	id          string
	assessment  domain.Assessment
	createdAt   time.Time
	now         func() time.Time
	mu          sync.Mutex
	responses   *ResponseStore
	result      *domain.AssessmentResult
	finalizedAt time.Time
}

// newSession allows deterministic timestamps in tests.
func newSession(id string, a domain.Assessment, now func() time.Time) *Session {
	return &Session{
		id:         id,
		assessment: a,
		createdAt:  now(),
		now:        now,
		responses:  NewResponseStore(a),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// AssessmentID returns the id of the assessment being taken.
func (s *Session) AssessmentID() string {
	return s.assessment.ID
}

// Answer returns the current answer to questionID.
func (s *Session) Answer(questionID string) (domain.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses.Answer(questionID)
}

// IsFinalized reports whether a result has been computed.
func (s *Session) IsFinalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil
}

func (s *Session) info() SessionInfo {
	info := SessionInfo{
		SessionID:    s.id,
		AssessmentID: s.assessment.ID,
		Title:        s.assessment.Title,
	}
	for _, section := range domain.Sections() {
		info.Sections = append(info.Sections, SectionInfo{
			Section:     section,
			QuestionIDs: s.assessment.QuestionIDs(section),
		})
	}
	return info
}

func (s *Session) record(questionID string, value domain.Value) (AnswerAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return AnswerAck{}, domain.ErrSessionFinalized
	}
	if err := s.responses.Record(questionID, value); err != nil {
		return AnswerAck{}, err
	}

	q, _ := s.assessment.Question(questionID)
	section := q.Category.Section()
	answered, total := s.countLocked(section)
	return AnswerAck{
		QuestionID:      questionID,
		Section:         section,
		SectionComplete: answered == total,
		Answered:        answered,
		Total:           total,
	}, nil
}

func (s *Session) sectionComplete(section domain.Section) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses.AllAnswered(s.assessment.QuestionIDs(section))
}

func (s *Session) progress() []SectionProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SectionProgress, 0, len(domain.Sections()))
	for _, section := range domain.Sections() {
		answered, total := s.countLocked(section)
		out = append(out, SectionProgress{
			Section:  section,
			Answered: answered,
			Total:    total,
			Complete: answered == total,
		})
	}
	return out
}

func (s *Session) countLocked(section domain.Section) (int, int) {
	ids := s.assessment.QuestionIDs(section)
	answered := 0
	for _, id := range ids {
		if _, ok := s.responses.Answer(id); ok {
			answered++
		}
	}
	return answered, len(ids)
}

func (s *Session) finalize(overrides domain.Overrides) (domain.AssessmentResult, time.Duration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		if overrides.Weights != nil || overrides.Thresholds != nil {
			return domain.AssessmentResult{}, 0, false, domain.ErrSessionFinalized
		}
		return cloneResult(*s.result), s.finalizedAt.Sub(s.createdAt), false, nil
	}

	result, err := scoring.Compute(s.assessment, s.responses, overrides)
	if err != nil {
		return domain.AssessmentResult{}, 0, false, err
	}
	s.result = &result
	s.finalizedAt = s.now()
	return cloneResult(result), s.finalizedAt.Sub(s.createdAt), true, nil
}

// cloneResult copies the slices so callers cannot reach the stored result.
func cloneResult(r domain.AssessmentResult) domain.AssessmentResult {
	r.CareerMatches = append([]domain.CareerMatch(nil), r.CareerMatches...)
	r.NextSteps = append([]string(nil), r.NextSteps...)
	r.PsychologicalFit.Breakdown = append([]domain.SubcategoryScore(nil), r.PsychologicalFit.Breakdown...)
	r.TechnicalReadiness.Breakdown = append([]domain.SubcategoryScore(nil), r.TechnicalReadiness.Breakdown...)
	for _, dim := range []*domain.CategoryScore{
		&r.Wiscar.Will, &r.Wiscar.Interest, &r.Wiscar.Skill,
		&r.Wiscar.Cognitive, &r.Wiscar.Ability, &r.Wiscar.RealWorld,
	} {
		dim.Breakdown = append([]domain.SubcategoryScore(nil), dim.Breakdown...)
	}
	return r
}
