package university

import (
	"context"

	"orientation-service/internal/apperr"
	"orientation-service/internal/events"
)

var (
	ErrUniversityNotFound = apperr.NotFound("University not found")
	ErrUniversityExists   = apperr.Conflict("A university with this name already exists.")
)

type Service interface {
	CreateUniversity(ctx context.Context, req UniversityRequest) (*University, error)
	GetAllUniversities(ctx context.Context) ([]University, error)
	GetUniversityByID(ctx context.Context, id int) (*University, error)
	UpdateUniversity(ctx context.Context, id int, req UniversityRequest) (*University, error)
	DeleteUniversity(ctx context.Context, id int) error
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

func (s *service) CreateUniversity(ctx context.Context, req UniversityRequest) (*University, error) {
	university := &University{
		Name:     req.Name,
		Location: req.Location,
		Type:     req.Type,
	}
	if err := s.repo.Create(ctx, university); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, events.UniversityCreated, university.ID, 0)
	return university, nil
}

func (s *service) GetAllUniversities(ctx context.Context) ([]University, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetUniversityByID(ctx context.Context, id int) (*University, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateUniversity(ctx context.Context, id int, req UniversityRequest) (*University, error) {
	university := &University{
		ID:       id,
		Name:     req.Name,
		Location: req.Location,
		Type:     req.Type,
	}
	if err := s.repo.Update(ctx, university); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, events.UniversityUpdated, id, 0)
	return university, nil
}

func (s *service) DeleteUniversity(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, events.UniversityDeleted, id, 0)
	return nil
}
