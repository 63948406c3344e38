package insight

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"orientation-service/internal/db"
	"orientation-service/internal/metrics"

	"github.com/uptrace/bun"
)

// careerPathName picks the specific career path and falls back to the general field.
const careerPathName = "COALESCE(NULLIF(cp.specific_career_path, ''), cp.general_field)"

type Repository interface {
	Create(ctx context.Context, insight *Insight) error
	GetAll(ctx context.Context) ([]Insight, error)
	GetByID(ctx context.Context, id int) (*Insight, error)
	Delete(ctx context.Context, id int) error
	ListReport(ctx context.Context) ([]ReportRow, error)
	GetFirstForCareerPath(ctx context.Context, careerPathID int) (*Insight, error)
	CareerPathName(ctx context.Context, careerPathID int) (string, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) Create(ctx context.Context, insight *Insight) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(insight).Returning("*").Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "insert", "insights", time.Since(start), err)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCareerPathNotFound
		}
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]Insight, error) {
	start := time.Now()
	insights := []Insight{}
	err := r.db.NewSelect().Model(&insights).Order("i.id ASC").Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "insights", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return insights, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Insight, error) {
	start := time.Now()
	insight := new(Insight)
	err := r.db.NewSelect().Model(insight).Where("i.id = ?", id).Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "insights", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}
	return insight, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	insight := &Insight{ID: id}
	result, err := r.db.NewDelete().Model(insight).WherePK().Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "delete", "insights", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete insight: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInsightNotFound
	}
	return nil
}

func (r *repository) ListReport(ctx context.Context) ([]ReportRow, error) {
	start := time.Now()
	rows := []ReportRow{}
	err := r.db.NewSelect().
		TableExpr("insights AS i").
		ColumnExpr("i.id, i.career_path_id, i.employability_rate, i.average_salary").
		ColumnExpr(careerPathName+" AS career_path").
		Join("JOIN careerpaths AS cp ON cp.id = i.career_path_id").
		Order("i.id ASC").
		Scan(ctx, &rows)
	r.metrics.Database.RecordQuery(ctx, "select", "insights", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to build insight report: %w", err)
	}
	return rows, nil
}

// GetFirstForCareerPath returns the oldest insight recorded for the career path.
func (r *repository) GetFirstForCareerPath(ctx context.Context, careerPathID int) (*Insight, error) {
	start := time.Now()
	insight := new(Insight)
	err := r.db.NewSelect().
		Model(insight).
		Where("i.career_path_id = ?", careerPathID).
		Order("i.id ASC").
		Limit(1).
		Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "insights", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoInsightsForCareerPath
		}
		return nil, fmt.Errorf("failed to get insight for career path: %w", err)
	}
	return insight, nil
}

func (r *repository) CareerPathName(ctx context.Context, careerPathID int) (string, error) {
	start := time.Now()
	var name string
	err := r.db.NewSelect().
		TableExpr("careerpaths AS cp").
		ColumnExpr(careerPathName).
		Where("cp.id = ?", careerPathID).
		Scan(ctx, &name)
	r.metrics.Database.RecordQuery(ctx, "select", "careerpaths", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrCareerPathNotFound
		}
		return "", fmt.Errorf("failed to get career path name: %w", err)
	}
	return name, nil
}
