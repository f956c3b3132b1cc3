package database

import (
	"github.com/evandrarf/lessonhub/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.KVEntry{},
	)
}
