package insight

import (
	"github.com/uptrace/bun"
)

type Insight struct {
	bun.BaseModel `bun:"table:insights,alias:i"`

	ID                int      `bun:"id,pk,autoincrement" json:"id"`
	CareerPathID      int      `bun:"career_path_id,notnull" json:"career_path_id"`
	EmployabilityRate *float64 `bun:"employability_rate" json:"employability_rate"`
	AverageSalary     *float64 `bun:"average_salary" json:"average_salary"`
}

type CreateInsightRequest struct {
	CareerPathID      int      `json:"career_path_id" validate:"required,gt=0"`
	EmployabilityRate *float64 `json:"employability_rate" validate:"omitempty,gte=0,lte=100"`
	AverageSalary     *float64 `json:"average_salary" validate:"omitempty,gte=0"`
}

// ReportRow is an insight joined with the display name of its career path.
type ReportRow struct {
	ID                int      `bun:"id"`
	CareerPathID      int      `bun:"career_path_id"`
	CareerPath        string   `bun:"career_path"`
	EmployabilityRate *float64 `bun:"employability_rate"`
	AverageSalary     *float64 `bun:"average_salary"`
}

type EmployabilityRate struct {
	CareerPathID      int      `json:"career_path_id"`
	CareerPath        string   `json:"career_path"`
	EmployabilityRate *float64 `json:"employability_rate"`
}

type AverageSalary struct {
	CareerPathID  int      `json:"career_path_id"`
	CareerPath    string   `json:"career_path"`
	AverageSalary *float64 `json:"average_salary"`
}

type CareerPathInsight struct {
	CareerPathID      int      `json:"career_path_id"`
	CareerPathName    string   `json:"career_path_name"`
	EmployabilityRate *float64 `json:"employability_rate"`
	AverageSalary     *float64 `json:"average_salary"`
}
