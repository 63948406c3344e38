package universityprogram

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

// LinkFilter narrows ListDetails; zero fields match everything.
type LinkFilter struct {
	UniversityID int
	ProgramID    int
}

type Repository interface {
	Create(ctx context.Context, link *UniversityProgram) error
	Delete(ctx context.Context, universityID, programID int) error
	GetByPair(ctx context.Context, universityID, programID int) (*UniversityProgram, error)
	ListDetails(ctx context.Context, filter LinkFilter) ([]LinkDetail, error)
	ListEligible(ctx context.Context, section Section, score float64) ([]LinkDetail, error)
	UniversityName(ctx context.Context, universityID int) (string, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

// Create checks both ends of the link and inserts it in one transaction. The
// pair constraint turns a concurrent duplicate into ErrAlreadyLinked.
func (r *repository) Create(ctx context.Context, link *UniversityProgram) error {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Table("universities").Where("id = ?", link.UniversityID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to look up university: %w", err)
		}
		if !exists {
			return ErrUniversityNotFound
		}

		exists, err = tx.NewSelect().Table("programs").Where("program_id = ?", link.ProgramID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to look up program: %w", err)
		}
		if !exists {
			return ErrProgramNotFound
		}

		_, err = tx.NewInsert().Model(link).Returning("*").Exec(ctx)
		return err
	})
	r.metrics.Database.RecordQuery(ctx, "insert", "university_programs", time.Since(start), err)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUniversityNotFound), errors.Is(err, ErrProgramNotFound):
		return err
	case db.IsUniqueViolation(err):
		return ErrAlreadyLinked
	case db.IsForeignKeyViolation(err):
		return ErrLinkNotFound
	default:
		return fmt.Errorf("failed to link program: %w", err)
	}
}

func (r *repository) Delete(ctx context.Context, universityID, programID int) error {
	start := time.Now()
	result, err := r.db.NewDelete().
		Model((*UniversityProgram)(nil)).
		Where("university_id = ?", universityID).
		Where("program_id = ?", programID).
		Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "delete", "university_programs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to unlink program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotLinked
	}
	return nil
}

func (r *repository) GetByPair(ctx context.Context, universityID, programID int) (*UniversityProgram, error) {
	start := time.Now()
	link := new(UniversityProgram)
	err := r.db.NewSelect().
		Model(link).
		Where("up.university_id = ?", universityID).
		Where("up.program_id = ?", programID).
		Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "university_programs", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get university program: %w", err)
	}
	return link, nil
}

func (r *repository) detailQuery() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("university_programs AS up").
		ColumnExpr("up.id, up.university_id, up.program_id").
		ColumnExpr("up.min_score_science, up.min_score_maths, up.min_score_literature, up.min_score_economics, up.min_score_info").
		ColumnExpr("u.name AS university_name, u.location AS university_location").
		ColumnExpr("p.program_name, p.career_path_id").
		Join("JOIN universities AS u ON u.id = up.university_id").
		Join("JOIN programs AS p ON p.program_id = up.program_id").
		Order("up.id ASC")
}

func (r *repository) ListDetails(ctx context.Context, filter LinkFilter) ([]LinkDetail, error) {
	start := time.Now()
	q := r.detailQuery()
	if filter.UniversityID != 0 {
		q = q.Where("up.university_id = ?", filter.UniversityID)
	}
	if filter.ProgramID != 0 {
		q = q.Where("up.program_id = ?", filter.ProgramID)
	}

	details := []LinkDetail{}
	err := q.Scan(ctx, &details)
	r.metrics.Database.RecordQuery(ctx, "select", "university_programs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list university programs: %w", err)
	}
	return details, nil
}

// ListEligible keeps the links whose minimum for section is missing or at
// most score, in link insertion order.
func (r *repository) ListEligible(ctx context.Context, section Section, score float64) ([]LinkDetail, error) {
	start := time.Now()
	column := bun.Ident("up." + section.Column())

	details := []LinkDetail{}
	err := r.detailQuery().
		Where("(? IS NULL OR ? <= ?)", column, column, score).
		Scan(ctx, &details)
	r.metrics.Database.RecordQuery(ctx, "select", "university_programs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible programs: %w", err)
	}
	return details, nil
}

func (r *repository) UniversityName(ctx context.Context, universityID int) (string, error) {
	start := time.Now()
	var name string
	err := r.db.NewSelect().
		Table("universities").
		Column("name").
		Where("id = ?", universityID).
		Scan(ctx, &name)
	r.metrics.Database.RecordQuery(ctx, "select", "universities", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUniversityNotFound
		}
		return "", fmt.Errorf("failed to get university name: %w", err)
	}
	return name, nil
}
