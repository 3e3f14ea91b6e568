package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository carries the shared gorm handle for the listing, blog and
// contact repositories.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB exposes the underlying connection for migrations and tests.
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// paginate clamps page and limit before applying the offset. defaultLimit
// is the page size used when the request omits one.
func paginate(page, limit, defaultLimit int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset((page - 1) * limit).Limit(limit)
	}
}
