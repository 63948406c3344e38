package university

import (
	"github.com/uptrace/bun"
)

type University struct {
	bun.BaseModel `bun:"table:universities,alias:u"`

	ID       int     `bun:"id,pk,autoincrement" json:"id"`
	Name     string  `bun:"name,notnull,unique" json:"name"`
	Location *string `bun:"location" json:"location"`
	Type     *string `bun:"type" json:"type"`
}

// UniversityRequest is the body of both create and update; update replaces
// every field, so an omitted location or type is cleared.
type UniversityRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Type     *string `json:"type" validate:"omitempty,max=100"`
}
