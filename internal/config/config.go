package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// SuperAdminLogin фиксированный логин супер-админа. Запись в базе для него не создается.
	SuperAdminLogin = "suadmin"

	defaultSuperAdminPassword = "suadmin654321"
	// insecureSessionSecret используется только если SECRET_KEY не задан. В проде обязателен SECRET_KEY.
	insecureSessionSecret = "dev123"
)

type Config struct {
	RunAddress         string `env:"RUN_ADDRESS"`
	DatabasePath       string `env:"DATABASE_PATH"`
	MigrationsDir      string `env:"MIGRATIONS_DIR"`
	SessionSecret      string `env:"SECRET_KEY"`
	SuperAdminPassword string `env:"SUADMIN_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	return mergeConfig(&envConfig, &flagsConfig), nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabasePath, "d", "database.db", "Path to the database file")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.SessionSecret, "s", insecureSessionSecret, "Session signing secret")
	flag.StringVar(&flagConfig.SuperAdminPassword, "p", defaultSuperAdminPassword, "Super admin password")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:         defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabasePath:       defaultIfBlank(envConfig.DatabasePath, flagsConfig.DatabasePath),
		MigrationsDir:      defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		SessionSecret:      defaultIfBlank(envConfig.SessionSecret, flagsConfig.SessionSecret),
		SuperAdminPassword: defaultIfBlank(envConfig.SuperAdminPassword, flagsConfig.SuperAdminPassword),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
