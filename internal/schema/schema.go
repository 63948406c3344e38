// Package schema lists the tables of the service in creation order.
package schema

import (
	"orientation-service/internal/careerpath"
	"orientation-service/internal/db"
	"orientation-service/internal/insight"
	"orientation-service/internal/program"
	"orientation-service/internal/university"
	"orientation-service/internal/universityprogram"
	"orientation-service/internal/user"
)

// TableNames lists every table, children first, for truncation in tests.
var TableNames = []string{
	"insights",
	"university_programs",
	"users",
	"programs",
	"universities",
	"careerpaths",
}

// Tables returns the bootstrap definitions; referenced tables come first.
// Deleting a university or program removes its links, and a career path
// cannot be deleted while programs use it.
func Tables() []db.Table {
	return []db.Table{
		{Model: (*careerpath.CareerPath)(nil)},
		{Model: (*university.University)(nil)},
		{
			Model: (*program.Program)(nil),
			ForeignKeys: []string{
				`("career_path_id") REFERENCES "careerpaths" ("id") ON DELETE RESTRICT`,
			},
		},
		{
			Model: (*user.User)(nil),
			ForeignKeys: []string{
				`("career_path_id") REFERENCES "careerpaths" ("id") ON DELETE SET NULL`,
			},
		},
		{
			Model: (*universityprogram.UniversityProgram)(nil),
			ForeignKeys: []string{
				`("university_id") REFERENCES "universities" ("id") ON DELETE CASCADE`,
				`("program_id") REFERENCES "programs" ("program_id") ON DELETE CASCADE`,
			},
		},
		{
			Model: (*insight.Insight)(nil),
			ForeignKeys: []string{
				`("career_path_id") REFERENCES "careerpaths" ("id") ON DELETE CASCADE`,
			},
		},
	}
}
