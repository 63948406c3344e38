package program

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
	Create(ctx context.Context, program *Program) error
	GetAll(ctx context.Context) ([]Program, error)
	GetByID(ctx context.Context, id int) (*Program, error)
	GetOfferedByCareerPath(ctx context.Context, careerPathID int) ([]Program, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) Create(ctx context.Context, program *Program) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(program).Returning("*").Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "insert", "programs", time.Since(start), err)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCareerPathNotFound
		}
		return fmt.Errorf("failed to insert program: %w", err)
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]Program, error) {
	start := time.Now()
	programs := []Program{}
	err := r.db.NewSelect().Model(&programs).Order("p.program_id ASC").Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "programs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Program, error) {
	start := time.Now()
	program := new(Program)
	err := r.db.NewSelect().Model(program).Where("p.program_id = ?", id).Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "programs", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return program, nil
}

// GetOfferedByCareerPath returns the programs of a career path that at least
// one university offers.
func (r *repository) GetOfferedByCareerPath(ctx context.Context, careerPathID int) ([]Program, error) {
	start := time.Now()
	programs := []Program{}
	offered := r.db.NewSelect().
		TableExpr("university_programs AS up").
		ColumnExpr("1").
		Where("up.program_id = p.program_id")
	err := r.db.NewSelect().
		Model(&programs).
		Where("p.career_path_id = ?", careerPathID).
		Where("EXISTS (?)", offered).
		Order("p.program_id ASC").
		Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "programs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs by career path: %w", err)
	}
	return programs, nil
}

// Delete removes the program and, through the cascading foreign key, every
// university link that points at it.
func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	program := &Program{ID: id}
	result, err := r.db.NewDelete().Model(program).WherePK().Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "delete", "programs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProgramNotFound
	}
	return nil
}
