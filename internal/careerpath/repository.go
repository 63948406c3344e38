package careerpath

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

type Repository interface {
	Create(ctx context.Context, careerPath *CareerPath) error
	GetAll(ctx context.Context) ([]CareerPath, error)
	GetByID(ctx context.Context, id int) (*CareerPath, error)
	GetByIDs(ctx context.Context, ids []int) ([]CareerPath, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) Create(ctx context.Context, careerPath *CareerPath) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(careerPath).Returning("*").Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "insert", "careerpaths", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert career path: %w", err)
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]CareerPath, error) {
	start := time.Now()
	careerPaths := []CareerPath{}
	err := r.db.NewSelect().Model(&careerPaths).Order("cp.id ASC").Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "careerpaths", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list career paths: %w", err)
	}
	return careerPaths, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*CareerPath, error) {
	start := time.Now()
	careerPath := new(CareerPath)
	err := r.db.NewSelect().Model(careerPath).Where("cp.id = ?", id).Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "careerpaths", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCareerPathNotFound
		}
		return nil, fmt.Errorf("failed to get career path: %w", err)
	}
	return careerPath, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int) ([]CareerPath, error) {
	careerPaths := []CareerPath{}
	if len(ids) == 0 {
		return careerPaths, nil
	}

	start := time.Now()
	err := r.db.NewSelect().
		Model(&careerPaths).
		Where("cp.id IN (?)", bun.In(ids)).
		Order("cp.id ASC").
		Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "careerpaths", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get career paths: %w", err)
	}
	return careerPaths, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	result, err := r.db.NewDelete().Model((*CareerPath)(nil)).Where("id = ?", id).Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "delete", "careerpaths", time.Since(start), err)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCareerPathInUse
		}
		return fmt.Errorf("failed to delete career path: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCareerPathNotFound
	}
	return nil
}
