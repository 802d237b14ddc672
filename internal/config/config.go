package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Shop     ShopConfig
	Auth     AuthConfig
	Token    TokenConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type ShopConfig struct {
	Name  string
	Phone string
}

// AuthConfig carries the shared-secret gates for the staff and admin
// surfaces. Core operations never read these; only the HTTP middleware does.
type AuthConfig struct {
	StaffKey string
	AdminKey string
}

type TokenConfig struct {
	Length      int
	MaxAttempts int
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "stringdesk")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "stringdesk")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOP_NAME", "昇活運動用品館")
	viper.SetDefault("SHOP_PHONE", "0424181997")
	viper.SetDefault("STAFF_KEY", "")
	viper.SetDefault("ADMIN_KEY", "")
	viper.SetDefault("TOKEN_LENGTH", 8)
	viper.SetDefault("TOKEN_MAX_ATTEMPTS", 5)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Shop: ShopConfig{
			Name:  viper.GetString("SHOP_NAME"),
			Phone: viper.GetString("SHOP_PHONE"),
		},
		Auth: AuthConfig{
			StaffKey: viper.GetString("STAFF_KEY"),
			AdminKey: viper.GetString("ADMIN_KEY"),
		},
		Token: TokenConfig{
			Length:      viper.GetInt("TOKEN_LENGTH"),
			MaxAttempts: viper.GetInt("TOKEN_MAX_ATTEMPTS"),
		},
	}

	return cfg, nil
}
