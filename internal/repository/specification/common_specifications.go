package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// OrderBy sorts by one column. The field name always comes from a
// call-site literal, never from request input.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}
