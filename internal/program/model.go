package program

import (
	"github.com/uptrace/bun"
)

type Program struct {
	bun.BaseModel `bun:"table:programs,alias:p"`

	ID           int    `bun:"program_id,pk,autoincrement" json:"program_id"`
	ProgramType  string `bun:"program_type,notnull,type:varchar(100)" json:"program_type"`
	ProgramName  string `bun:"program_name,notnull,type:varchar(100)" json:"program_name"`
	CareerPathID int    `bun:"career_path_id,notnull" json:"career_path_id"`
}

type CreateProgramRequest struct {
	ProgramName  string `json:"program_name" validate:"required,max=100"`
	ProgramType  string `json:"program_type" validate:"required,max=100"`
	CareerPathID int    `json:"career_path_id" validate:"required,gt=0"`
}
