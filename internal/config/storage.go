package config

import (
	"fmt"

	"github.com/evandrarf/lessonhub/database"
	"github.com/evandrarf/lessonhub/internal/delivery/http/repository"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// NewStore opens the key-value backend named by storage.driver. The returned
// close func releases it. db is reused for sql drivers when non-nil.
func NewStore(config *viper.Viper, db *gorm.DB, log *logrus.Logger) (storage.Store, func() error, error) {
	driver := config.GetString("storage.driver")
	log.WithField("driver", driver).Info("opening storage")

	switch driver {
	case "", "memory":
		return storage.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		store, err := storage.NewRedisStore(storage.RedisConfig{
			Addr:     config.GetString("redis.addr"),
			Password: config.GetString("redis.password"),
			DB:       config.GetInt("redis.db"),
			TTL:      config.GetDuration("redis.ttl"),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "sqlite", "postgres":
		if db == nil {
			db = database.New(config)
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewKVStore(db, repository.NewKVRepository(db)), sqlDB.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
}
