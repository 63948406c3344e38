package insight

import (
	"context"

	"orientation-service/internal/apperr"
)

var (
	ErrInsightNotFound         = apperr.NotFound("Insight not found.")
	ErrCareerPathNotFound      = apperr.NotFound("Career path not found.")
	ErrNoInsightsForCareerPath = apperr.NotFound("No insights found for the specified career path.")
	ErrNoEmployabilityData     = apperr.NotFound("No employability data found")
	ErrNoSalaryData            = apperr.NotFound("No salary data found")
)

type Service interface {
	CreateInsight(ctx context.Context, req CreateInsightRequest) (*Insight, error)
	GetAllInsights(ctx context.Context) ([]Insight, error)
	GetInsightByID(ctx context.Context, id int) (*Insight, error)
	DeleteInsight(ctx context.Context, id int) error
	GetEmployabilityRates(ctx context.Context) ([]EmployabilityRate, error)
	GetAverageSalaries(ctx context.Context) ([]AverageSalary, error)
	GetCareerPathInsight(ctx context.Context, careerPathID int) (*CareerPathInsight, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateInsight(ctx context.Context, req CreateInsightRequest) (*Insight, error) {
	insight := &Insight{
		CareerPathID:      req.CareerPathID,
		EmployabilityRate: req.EmployabilityRate,
		AverageSalary:     req.AverageSalary,
	}
	if err := s.repo.Create(ctx, insight); err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *service) GetAllInsights(ctx context.Context) ([]Insight, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetInsightByID(ctx context.Context, id int) (*Insight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteInsight(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetEmployabilityRates(ctx context.Context) ([]EmployabilityRate, error) {
	rows, err := s.repo.ListReport(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoEmployabilityData
	}

	rates := make([]EmployabilityRate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, EmployabilityRate{
			CareerPathID:      row.CareerPathID,
			CareerPath:        row.CareerPath,
			EmployabilityRate: row.EmployabilityRate,
		})
	}
	return rates, nil
}

func (s *service) GetAverageSalaries(ctx context.Context) ([]AverageSalary, error) {
	rows, err := s.repo.ListReport(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoSalaryData
	}

	salaries := make([]AverageSalary, 0, len(rows))
	for _, row := range rows {
		salaries = append(salaries, AverageSalary{
			CareerPathID:  row.CareerPathID,
			CareerPath:    row.CareerPath,
			AverageSalary: row.AverageSalary,
		})
	}
	return salaries, nil
}

// GetCareerPathInsight reports a missing insight before a missing career path.
func (s *service) GetCareerPathInsight(ctx context.Context, careerPathID int) (*CareerPathInsight, error) {
	insight, err := s.repo.GetFirstForCareerPath(ctx, careerPathID)
	if err != nil {
		return nil, err
	}

	name, err := s.repo.CareerPathName(ctx, careerPathID)
	if err != nil {
		return nil, err
	}

	return &CareerPathInsight{
		CareerPathID:      careerPathID,
		CareerPathName:    name,
		EmployabilityRate: insight.EmployabilityRate,
		AverageSalary:     insight.AverageSalary,
	}, nil
}
