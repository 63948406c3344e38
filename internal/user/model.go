package user

import (
	"context"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID                   int      `bun:"id,pk,autoincrement" json:"id"`
	Username             string   `bun:"username,notnull,unique,type:varchar(100)" json:"username"`
	Password             string   `bun:"password,notnull,type:varchar(255)" json:"-"`
	BaccalaureateScore   *float64 `bun:"baccalaureate_score" json:"baccalaureate_score"`
	BaccalaureateSection *string  `bun:"baccalaureate_section" json:"baccalaureate_section"`
	CareerPathID         *int     `bun:"career_path_id" json:"career_path_id"`
}

// Profile is the public view of a user.
type Profile struct {
	ID                   int      `json:"id"`
	Username             string   `json:"username"`
	BaccalaureateScore   *float64 `json:"baccalaureate_score"`
	BaccalaureateSection *string  `json:"baccalaureate_section"`
	CareerPathID         *int     `json:"career_path_id"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:                   u.ID,
		Username:             u.Username,
		BaccalaureateScore:   u.BaccalaureateScore,
		BaccalaureateSection: u.BaccalaureateSection,
		CareerPathID:         u.CareerPathID,
	}
}

// Summary is a user joined with its career path.
type Summary struct {
	UserID               int      `bun:"user_id" json:"user_id"`
	Username             string   `bun:"username" json:"username"`
	BaccalaureateScore   *float64 `bun:"baccalaureate_score" json:"baccalaureate_score"`
	BaccalaureateSection *string  `bun:"baccalaureate_section" json:"baccalaureate_section"`
	CareerPathGeneral    *string  `bun:"career_path_general" json:"career_path_general"`
	CareerPathSpecific   *string  `bun:"career_path_specific" json:"career_path_specific"`
}

type PreferencesRequest struct {
	CareerPathID         int      `json:"career_path_id" validate:"required,gt=0"`
	BaccalaureateScore   *float64 `json:"baccalaureate_score" validate:"omitempty,gte=0"`
	BaccalaureateSection *string  `json:"baccalaureate_section" validate:"omitempty,oneof=science maths literature economics info"`
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user stored in ctx, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok && u != nil
}
