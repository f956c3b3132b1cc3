package database

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by storage.driver ("postgres" or "sqlite").
func New(config *viper.Viper) *gorm.DB {
	dialector, err := Dialector(config)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	return db
}

func Dialector(config *viper.Viper) (gorm.Dialector, error) {
	switch driver := config.GetString("storage.driver"); driver {
	case "sqlite":
		path := config.GetString("database.sqlite_path")
		if path == "" {
			path = "lessonhub.db"
		}
		return sqlite.Open(path), nil
	case "postgres":
		return postgres.Open(postgresDSN(config)), nil
	default:
		return nil, fmt.Errorf("storage driver %q has no database", driver)
	}
}

func postgresDSN(config *viper.Viper) string {
	username := config.GetString("database.username")
	password := config.GetString("database.password")
	host := config.GetString("database.host")
	port := config.GetInt("database.port")
	dbname := config.GetString("database.dbname")
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		host,
		username,
		password,
		dbname,
		port,
		sslmode,
		timezone,
	)
}
