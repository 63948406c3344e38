package universityprogram

import (
	"github.com/uptrace/bun"
)

// Thresholds are the minimum scores per baccalaureate section. A nil value
// means the section has no minimum.
type Thresholds struct {
	MinScoreScience    *float64 `bun:"min_score_science" json:"min_score_science" validate:"omitempty,gte=0"`
	MinScoreMaths      *float64 `bun:"min_score_maths" json:"min_score_maths" validate:"omitempty,gte=0"`
	MinScoreLiterature *float64 `bun:"min_score_literature" json:"min_score_literature" validate:"omitempty,gte=0"`
	MinScoreEconomics  *float64 `bun:"min_score_economics" json:"min_score_economics" validate:"omitempty,gte=0"`
	MinScoreInfo       *float64 `bun:"min_score_info" json:"min_score_info" validate:"omitempty,gte=0"`
}

type UniversityProgram struct {
	bun.BaseModel `bun:"table:university_programs,alias:up"`

	ID           int `bun:"id,pk,autoincrement" json:"id"`
	UniversityID int `bun:"university_id,notnull,unique:university_programs_pair" json:"university_id"`
	ProgramID    int `bun:"program_id,notnull,unique:university_programs_pair" json:"program_id"`
	Thresholds
}

// LinkDetail is a link joined with the names of its university and program.
type LinkDetail struct {
	ID                 int     `bun:"id" json:"id"`
	UniversityID       int     `bun:"university_id" json:"university_id"`
	UniversityName     string  `bun:"university_name" json:"university_name"`
	UniversityLocation *string `bun:"university_location" json:"university_location"`
	ProgramID          int     `bun:"program_id" json:"program_id"`
	ProgramName        string  `bun:"program_name" json:"program_name"`
	CareerPathID       int     `bun:"career_path_id" json:"career_path_id"`
	Thresholds
}

type OfferedProgram struct {
	ProgramID   int    `json:"program_id"`
	ProgramName string `json:"program_name"`
	Thresholds
}

type UniversityPrograms struct {
	UniversityID   int              `json:"university_id"`
	UniversityName string           `json:"university_name"`
	Programs       []OfferedProgram `json:"programs"`
}

type LinkProgramRequest struct {
	Thresholds
}

type EligibilityQuery struct {
	Score        float64
	Section      string
	ProgramID    int
	UniversityID int
}

type EligibilityResult struct {
	UniversityID int      `json:"university_id"`
	ProgramID    int      `json:"program_id"`
	Section      Section  `json:"section"`
	Score        float64  `json:"score"`
	Threshold    *float64 `json:"threshold"`
	Eligible     bool     `json:"eligible"`
	Message      string   `json:"message"`
}
