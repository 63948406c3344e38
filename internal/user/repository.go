package user

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
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	ListWithCareerPaths(ctx context.Context) ([]Summary, error)
	UpdatePreferences(ctx context.Context, user *User) error
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

// Create inserts the user; the unique username index reports duplicates,
// so concurrent signups of one name cannot both succeed.
func (r *repository) Create(ctx context.Context, user *User) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "insert", "users", time.Since(start), err)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrUsernameTaken
		}
		if db.IsForeignKeyViolation(err) {
			return ErrCareerPathNotFound
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	start := time.Now()
	user := new(User)
	err := r.db.NewSelect().Model(user).Where("usr.username = ?", username).Scan(ctx)
	r.metrics.Database.RecordQuery(ctx, "select", "users", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("password = ?", passwordHash).
		Where("username = ?", username).
		Exec(ctx)
	r.metrics.Database.RecordQuery(ctx, "update", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) ListWithCareerPaths(ctx context.Context) ([]Summary, error) {
	start := time.Now()
	summaries := []Summary{}
	err := r.db.NewSelect().
		TableExpr("users AS usr").
		ColumnExpr("usr.id AS user_id, usr.username, usr.baccalaureate_score, usr.baccalaureate_section").
		ColumnExpr("cp.general_field AS career_path_general, cp.specific_career_path AS career_path_specific").
		Join("LEFT JOIN careerpaths AS cp ON cp.id = usr.career_path_id").
		Order("usr.id ASC").
		Scan(ctx, &summaries)
	r.metrics.Database.RecordQuery(ctx, "select", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return summaries, nil
}

// UpdatePreferences verifies the career path and stores the preference
// columns of user in one transaction.
func (r *repository) UpdatePreferences(ctx context.Context, user *User) error {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if user.CareerPathID != nil {
			exists, err := tx.NewSelect().Table("careerpaths").Where("id = ?", *user.CareerPathID).Exists(ctx)
			if err != nil {
				return fmt.Errorf("failed to look up career path: %w", err)
			}
			if !exists {
				return ErrCareerPathNotFound
			}
		}

		result, err := tx.NewUpdate().
			Model(user).
			Column("career_path_id", "baccalaureate_score", "baccalaureate_section").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	r.metrics.Database.RecordQuery(ctx, "update", "users", time.Since(start), err)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCareerPathNotFound), errors.Is(err, ErrUserNotFound):
		return err
	case db.IsForeignKeyViolation(err):
		return ErrCareerPathNotFound
	default:
		return fmt.Errorf("failed to update preferences: %w", err)
	}
}
