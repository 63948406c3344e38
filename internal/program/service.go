package program

import (
	"context"

	"orientation-service/internal/apperr"
	"orientation-service/internal/events"
)

var (
	ErrProgramNotFound         = apperr.NotFound("Program not found")
	ErrCareerPathNotFound      = apperr.NotFound("Career path not found.")
	ErrNoProgramsForCareerPath = apperr.NotFound("No programs found for this career path")
)

type Service interface {
	CreateProgram(ctx context.Context, req CreateProgramRequest) (*Program, error)
	GetAllPrograms(ctx context.Context) ([]Program, error)
	GetProgramByID(ctx context.Context, id int) (*Program, error)
	GetProgramsByCareerPath(ctx context.Context, careerPathID int) ([]Program, error)
	DeleteProgram(ctx context.Context, id int) error
}

type service struct {
	repo    Repository
	emitter *events.Emitter
}

func NewService(repo Repository, emitter *events.Emitter) Service {
	return &service{
		repo:    repo,
		emitter: emitter,
	}
}

func (s *service) CreateProgram(ctx context.Context, req CreateProgramRequest) (*Program, error) {
	program := &Program{
		ProgramName:  req.ProgramName,
		ProgramType:  req.ProgramType,
		CareerPathID: req.CareerPathID,
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, events.ProgramCreated, program.ID, 0)
	return program, nil
}

func (s *service) GetAllPrograms(ctx context.Context) ([]Program, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetProgramByID(ctx context.Context, id int) (*Program, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetProgramsByCareerPath(ctx context.Context, careerPathID int) ([]Program, error) {
	programs, err := s.repo.GetOfferedByCareerPath(ctx, careerPathID)
	if err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return nil, ErrNoProgramsForCareerPath
	}
	return programs, nil
}

func (s *service) DeleteProgram(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, events.ProgramDeleted, id, 0)
	return nil
}
