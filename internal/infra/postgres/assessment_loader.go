package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-fit-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AssessmentLoader loads assessment JSONB from Postgres.
type AssessmentLoader struct {
	pool *pgxpool.Pool
}

func NewAssessmentLoader(pool *pgxpool.Pool) *AssessmentLoader {
	return &AssessmentLoader{pool: pool}
}

func (l *AssessmentLoader) LoadAssessment(ctx context.Context, assessmentID string) (domain.Assessment, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM assessments WHERE id=$1`, assessmentID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Assessment{}, fmt.Errorf("%w: %s", domain.ErrAssessmentNotFound, assessmentID)
		}
		return domain.Assessment{}, fmt.Errorf("load assessment: %w", err)
	}
	var a domain.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Assessment{}, fmt.Errorf("unmarshal assessment: %w", err)
	}
	if err := a.Validate(); err != nil {
		return domain.Assessment{}, fmt.Errorf("assessment %s: %w", assessmentID, err)
	}
	return a, nil
}

// ListAssessments returns every stored assessment ordered by id.
func (l *AssessmentLoader) ListAssessments(ctx context.Context) ([]domain.Assessment, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM assessments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assessment
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		var a domain.Assessment
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("unmarshal assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
