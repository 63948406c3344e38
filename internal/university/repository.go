package university

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
	Create(ctx context.Context, university *University) error
	GetAll(ctx context.Context) ([]University, error)
	GetByID(ctx context.Context, id int) (*University, error)
	Update(ctx context.Context, university *University) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) Create(ctx context.Context, university *University) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(university).Returning("*").Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "insert", "universities", time.Since(start), err)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrUniversityExists
		}
		return fmt.Errorf("failed to insert university: %w", err)
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]University, error) {
	start := time.Now()
	universities := []University{}
	err := r.db.NewSelect().Model(&universities).Order("u.id ASC").Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "universities", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	return universities, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*University, error) {
	start := time.Now()
	university := new(University)
	err := r.db.NewSelect().Model(university).Where("u.id = ?", id).Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "universities", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUniversityNotFound
		}
		return nil, fmt.Errorf("failed to get university: %w", err)
	}
	return university, nil
}

// Update overwrites name, location and type of the row with university.ID.
func (r *repository) Update(ctx context.Context, university *University) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(university).
		Column("name", "location", "type").
		WherePK().
		Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "update", "universities", time.Since(start), err)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrUniversityExists
		}
		return fmt.Errorf("failed to update university: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUniversityNotFound
	}
	return nil
}

// Delete removes the university; its program links go with it through the
// cascading foreign key.
func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	university := &University{ID: id}
	result, err := r.db.NewDelete().Model(university).WherePK().Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "delete", "universities", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete university: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUniversityNotFound
	}
	return nil
}
