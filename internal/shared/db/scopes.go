package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/licensehub/licensehub/internal/shared/query"
)

// Paginate applies the filter's offset and clamped limit.
func Paginate(f query.PageFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(f.Offset()).Limit(f.Limit())
	}
}

// ForUpdate takes row locks on the selected rows. Drivers without row locks
// (SQLite) drop the clause and rely on their database-level write lock.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}
