package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configName = "cartographers.cfg.json"

// FileConfig holds settings of the JSON file storage backend.
type FileConfig struct {
	DataDir string `json:"dataDir" mapstructure:"dataDir"`
}

type SqliteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects the game store. Type is one of memory, file, sqlite or postgres.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	File   FileConfig   `json:"file" mapstructure:"file"`
	Sqlite SqliteConfig `json:"sqlite" mapstructure:"sqlite"`
	DB     DBConfig     `json:"db" mapstructure:"db"`
}

// Load sets default values, then reads the config file from configDir if there is one.
// Environment variables prefixed with CARTOGRAPHERS_ override both.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("listenAddr", ":8080")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.file.dataDir", "./games")
	viper.SetDefault("storage.sqlite.path", "./cartographers.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "cartographers")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "cartographers")
	viper.SetDefault("influx.bucket", "scores")

	viper.SetDefault("metrics.csvDir", "./simulations")

	viper.SetEnvPrefix("CARTOGRAPHERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetStorageConfig returns the storage settings. The postgres connection lives under db.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		File: FileConfig{
			DataDir: viper.GetString("storage.file.dataDir"),
		},
		Sqlite: SqliteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}
