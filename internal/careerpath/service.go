package careerpath

import (
	"context"

	"orientation-service/internal/apperr"
)

var (
	ErrCareerPathNotFound = apperr.NotFound("Career path not found.")
	ErrCareerPathInUse    = apperr.Conflict("Career path is still referenced by programs.")
)

type Service interface {
	CreateCareerPath(ctx context.Context, req CreateCareerPathRequest) (*CareerPath, error)
	GetAllCareerPaths(ctx context.Context) ([]CareerPath, error)
	GetCareerPathByID(ctx context.Context, id int) (*CareerPath, error)
	GetCareerPathsByIDs(ctx context.Context, ids []int) ([]CareerPath, error)
	DeleteCareerPath(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCareerPath(ctx context.Context, req CreateCareerPathRequest) (*CareerPath, error) {
	careerPath := &CareerPath{
		GeneralField:       req.GeneralField,
		SpecificCareerPath: req.SpecificCareerPath,
	}
	if err := s.repo.Create(ctx, careerPath); err != nil {
		return nil, err
	}
	return careerPath, nil
}

func (s *service) GetAllCareerPaths(ctx context.Context) ([]CareerPath, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetCareerPathByID(ctx context.Context, id int) (*CareerPath, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetCareerPathsByIDs(ctx context.Context, ids []int) ([]CareerPath, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) DeleteCareerPath(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
