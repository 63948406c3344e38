package universityprogram

import (
	"context"
	"errors"
	"fmt"

	"orientation-service/internal/apperr"
	"orientation-service/internal/events"
	"orientation-service/internal/metrics"
)

var (
	ErrUniversityNotFound       = apperr.NotFound("University not found.")
	ErrProgramNotFound          = apperr.NotFound("Program not found.")
	ErrLinkNotFound             = apperr.NotFound("University or Program not found")
	ErrAlreadyLinked            = apperr.Conflict("This program is already linked to the university.")
	ErrNotLinked                = apperr.NotFound("Program not linked to this university.")
	ErrNoEligiblePrograms       = apperr.NotFound("No eligible university programs found.")
	ErrNoProgramsForUniversity  = apperr.NotFound("No programs found for this university")
	ErrNoUniversitiesForProgram = apperr.NotFound("No universities found offering this program")
)

type Service interface {
	GetProgramsOffered(ctx context.Context, universityID int) (*UniversityPrograms, error)
	LinkProgram(ctx context.Context, universityID, programID int, thresholds Thresholds) (*UniversityProgram, error)
	UnlinkProgram(ctx context.Context, universityID, programID int) error
	GetAllLinks(ctx context.Context) ([]LinkDetail, error)
	GetLinksByUniversity(ctx context.Context, universityID int) ([]LinkDetail, error)
	GetLinksByProgram(ctx context.Context, programID int) ([]LinkDetail, error)
	CheckEligibility(ctx context.Context, query EligibilityQuery) (*EligibilityResult, error)
	GetEligiblePrograms(ctx context.Context, section string, score float64) ([]LinkDetail, error)
}

type service struct {
	repo    Repository
	emitter *events.Emitter
	metrics *metrics.Metrics
}

func NewService(repo Repository, emitter *events.Emitter, m *metrics.Metrics) Service {
	return &service{
		repo:    repo,
		emitter: emitter,
		metrics: m,
	}
}

// GetProgramsOffered fails when the university is unknown or offers nothing.
func (s *service) GetProgramsOffered(ctx context.Context, universityID int) (*UniversityPrograms, error) {
	name, err := s.repo.UniversityName(ctx, universityID)
	if err != nil {
		if errors.Is(err, ErrUniversityNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("University with ID %d not found.", universityID))
		}
		return nil, err
	}

	details, err := s.repo.ListDetails(ctx, LinkFilter{UniversityID: universityID})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("No programs found for university ID %d.", universityID))
	}

	offered := &UniversityPrograms{
		UniversityID:   universityID,
		UniversityName: name,
		Programs:       make([]OfferedProgram, 0, len(details)),
	}
	for _, d := range details {
		offered.Programs = append(offered.Programs, OfferedProgram{
			ProgramID:   d.ProgramID,
			ProgramName: d.ProgramName,
			Thresholds:  d.Thresholds,
		})
	}
	return offered, nil
}

func (s *service) LinkProgram(ctx context.Context, universityID, programID int, thresholds Thresholds) (*UniversityProgram, error) {
	link := &UniversityProgram{
		UniversityID: universityID,
		ProgramID:    programID,
		Thresholds:   thresholds,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	s.metrics.Catalog.RecordLinkCreated(ctx)
	s.emitter.Emit(ctx, events.LinkCreated, universityID, programID)
	return link, nil
}

func (s *service) UnlinkProgram(ctx context.Context, universityID, programID int) error {
	if err := s.repo.Delete(ctx, universityID, programID); err != nil {
		return err
	}
	s.emitter.Emit(ctx, events.LinkDeleted, universityID, programID)
	return nil
}

func (s *service) GetAllLinks(ctx context.Context) ([]LinkDetail, error) {
	return s.repo.ListDetails(ctx, LinkFilter{})
}

func (s *service) GetLinksByUniversity(ctx context.Context, universityID int) ([]LinkDetail, error) {
	details, err := s.repo.ListDetails(ctx, LinkFilter{UniversityID: universityID})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoProgramsForUniversity
	}
	return details, nil
}

func (s *service) GetLinksByProgram(ctx context.Context, programID int) ([]LinkDetail, error) {
	details, err := s.repo.ListDetails(ctx, LinkFilter{ProgramID: programID})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoUniversitiesForProgram
	}
	return details, nil
}

// CheckEligibility looks the link up before validating the section, so an
// unknown pair is reported as not found whatever the section.
func (s *service) CheckEligibility(ctx context.Context, query EligibilityQuery) (*EligibilityResult, error) {
	link, err := s.repo.GetByPair(ctx, query.UniversityID, query.ProgramID)
	if err != nil {
		return nil, err
	}

	section, err := ParseSection(query.Section)
	if err != nil {
		return nil, err
	}

	result := &EligibilityResult{
		UniversityID: query.UniversityID,
		ProgramID:    query.ProgramID,
		Section:      section,
		Score:        query.Score,
		Threshold:    link.For(section),
		Eligible:     link.Admits(section, query.Score),
	}
	if result.Eligible {
		result.Message = MessageEligible
	} else {
		result.Message = MessageNotEligible
	}

	s.metrics.Catalog.RecordEligibilityCheck(ctx, string(section), result.Eligible)
	return result, nil
}

func (s *service) GetEligiblePrograms(ctx context.Context, section string, score float64) ([]LinkDetail, error) {
	parsed, err := ParseSection(section)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.ListEligible(ctx, parsed, score)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoEligiblePrograms
	}
	return details, nil
}
