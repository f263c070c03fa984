package specification

import "gorm.io/gorm"

// BySource filters snippets ingested from one source label.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}
