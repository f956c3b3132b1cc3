package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	setDefaults(config)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "lessonhub")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.cors.origins", "*")
	config.SetDefault("lesson_api.base_url", "http://localhost:8000/api")
	config.SetDefault("lesson_api.timeout", "15s")
	config.SetDefault("storage.driver", "memory")
	config.SetDefault("database.sqlite_path", "lessonhub.db")
	config.SetDefault("database.port", 5432)
	config.SetDefault("redis.addr", "localhost:6379")
	config.SetDefault("redis.db", 0)
	config.SetDefault("redis.ttl", "720h")
	config.SetDefault("render.variant", "enhanced")
	config.SetDefault("session.cookie_name", "client_id")
	config.SetDefault("session.secure", false)
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
}
