package user

import (
	"context"
	"errors"

	"orientation-service/internal/apperr"
	"orientation-service/internal/careerpath"
	"orientation-service/internal/universityprogram"
)

var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrUsernameTaken      = apperr.Conflict("Username already registered")
	ErrCareerPathNotFound = apperr.NotFound("Career path not found.")
	ErrNoCareerPaths      = apperr.NotFound("No career paths found.")
	ErrMissingSection     = apperr.Validation("baccalaureate_section is required")
	ErrMissingScore       = apperr.Validation("baccalaureate_score is required")
)

// EligibilityFinder lists the university programs a score admits.
type EligibilityFinder interface {
	GetEligiblePrograms(ctx context.Context, section string, score float64) ([]universityprogram.LinkDetail, error)
}

// CareerPathLookup resolves career path ids.
type CareerPathLookup interface {
	GetCareerPathsByIDs(ctx context.Context, ids []int) ([]careerpath.CareerPath, error)
}

// Standing is a baccalaureate section and score; nil fields fall back to
// the stored values of the caller.
type Standing struct {
	Section *string
	Score   *float64
}

type Service interface {
	GetProfile(ctx context.Context, username string) (*Profile, error)
	ListUsers(ctx context.Context) ([]Summary, error)
	UpdatePreferences(ctx context.Context, caller *User, req PreferencesRequest) (*Profile, error)
	SuggestCareerPaths(ctx context.Context, caller *User, standing Standing) ([]careerpath.CareerPath, error)
	GetEligiblePrograms(ctx context.Context, caller *User, standing Standing) ([]universityprogram.LinkDetail, error)
}

type service struct {
	repo        Repository
	eligibility EligibilityFinder
	careerPaths CareerPathLookup
}

func NewService(repo Repository, eligibility EligibilityFinder, careerPaths CareerPathLookup) Service {
	return &service{
		repo:        repo,
		eligibility: eligibility,
		careerPaths: careerPaths,
	}
}

func (s *service) GetProfile(ctx context.Context, username string) (*Profile, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

func (s *service) ListUsers(ctx context.Context) ([]Summary, error) {
	return s.repo.ListWithCareerPaths(ctx)
}

// UpdatePreferences sets the caller's career path and, when given, the
// baccalaureate section and score. Omitted baccalaureate fields keep their
// stored values.
func (s *service) UpdatePreferences(ctx context.Context, caller *User, req PreferencesRequest) (*Profile, error) {
	updated := *caller
	careerPathID := req.CareerPathID
	updated.CareerPathID = &careerPathID
	if req.BaccalaureateScore != nil {
		updated.BaccalaureateScore = req.BaccalaureateScore
	}
	if req.BaccalaureateSection != nil {
		updated.BaccalaureateSection = req.BaccalaureateSection
	}

	if err := s.repo.UpdatePreferences(ctx, &updated); err != nil {
		return nil, err
	}
	return updated.Profile(), nil
}

// SuggestCareerPaths returns the career paths of the programs the standing
// admits, in id order.
func (s *service) SuggestCareerPaths(ctx context.Context, caller *User, standing Standing) ([]careerpath.CareerPath, error) {
	programs, err := s.GetEligiblePrograms(ctx, caller, standing)
	if err != nil {
		if errors.Is(err, universityprogram.ErrNoEligiblePrograms) {
			return nil, ErrNoCareerPaths
		}
		return nil, err
	}

	seen := make(map[int]bool)
	ids := make([]int, 0, len(programs))
	for _, p := range programs {
		if !seen[p.CareerPathID] {
			seen[p.CareerPathID] = true
			ids = append(ids, p.CareerPathID)
		}
	}

	paths, err := s.careerPaths.GetCareerPathsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoCareerPaths
	}
	return paths, nil
}

func (s *service) GetEligiblePrograms(ctx context.Context, caller *User, standing Standing) ([]universityprogram.LinkDetail, error) {
	section, score, err := resolveStanding(caller, standing)
	if err != nil {
		return nil, err
	}
	return s.eligibility.GetEligiblePrograms(ctx, section, score)
}

func resolveStanding(caller *User, standing Standing) (string, float64, error) {
	section := standing.Section
	score := standing.Score
	if caller != nil {
		if section == nil {
			section = caller.BaccalaureateSection
		}
		if score == nil {
			score = caller.BaccalaureateScore
		}
	}
	if section == nil {
		return "", 0, ErrMissingSection
	}
	if score == nil {
		return "", 0, ErrMissingScore
	}
	return *section, *score, nil
}
