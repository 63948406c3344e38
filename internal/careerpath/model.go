package careerpath

import (
	"github.com/uptrace/bun"
)

type CareerPath struct {
	bun.BaseModel `bun:"table:careerpaths,alias:cp"`

	ID                 int     `bun:"id,pk,autoincrement" json:"id"`
	GeneralField       string  `bun:"general_field,notnull" json:"general_field"`
	SpecificCareerPath *string `bun:"specific_career_path" json:"specific_career_path"`
}

// Name is the specific career path when one is set, otherwise the general field.
func (c *CareerPath) Name() string {
	if c.SpecificCareerPath != nil && *c.SpecificCareerPath != "" {
		return *c.SpecificCareerPath
	}
	return c.GeneralField
}

type CreateCareerPathRequest struct {
	GeneralField       string  `json:"general_field" validate:"required,max=255"`
	SpecificCareerPath *string `json:"specific_career_path" validate:"omitempty,max=255"`
}
