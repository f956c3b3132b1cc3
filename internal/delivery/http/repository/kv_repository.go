package repository

import (
	"errors"
	"strings"

	"github.com/evandrarf/lessonhub/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	KVRepository interface {
		Find(db *gorm.DB, key string) (*entity.KVEntry, error)
		Upsert(db *gorm.DB, key, value string) error
		Delete(db *gorm.DB, key string) error
		DeleteByPrefix(db *gorm.DB, prefix string) (int64, error)
		Count(db *gorm.DB) (int64, error)
	}

	kvRepository struct {
		db *gorm.DB
	}
)

func NewKVRepository(db *gorm.DB) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Find(db *gorm.DB, key string) (*entity.KVEntry, error) {
	if db == nil {
		db = r.db
	}
	var entry entity.KVEntry
	err := db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *kvRepository) Upsert(db *gorm.DB, key, value string) error {
	if db == nil {
		db = r.db
	}
	entry := entity.KVEntry{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *kvRepository) Delete(db *gorm.DB, key string) error {
	if db == nil {
		db = r.db
	}
	return db.Where("key = ?", key).Delete(&entity.KVEntry{}).Error
}

// DeleteByPrefix drops every key starting with prefix and returns how many went.
func (r *kvRepository) DeleteByPrefix(db *gorm.DB, prefix string) (int64, error) {
	if db == nil {
		db = r.db
	}
	if prefix == "" {
		return 0, errors.New("refusing to delete with an empty prefix")
	}
	res := db.Where("key LIKE ? ESCAPE ?", escapeLike(prefix)+"%", `\`).Delete(&entity.KVEntry{})
	return res.RowsAffected, res.Error
}

func (r *kvRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.KVEntry{}).Count(&count).Error
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
