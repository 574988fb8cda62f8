package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Log      LogConfig
	Elastic  ElasticConfig
	Bedrock  BedrockConfig
	Workdir  string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
}

// StorageConfig holds journey archive storage configuration.
type StorageConfig struct {
	Kind            string        // "local" or "s3"
	BaseDir         string        // For local: archive root
	S3Bucket        string        // For S3: bucket name
	S3Region        string        // For S3: AWS region
	S3PresignExpiry time.Duration // Presigned URL expiration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// ElasticConfig holds the synthetics deployment target.
type ElasticConfig struct {
	KibanaURL string
	APIKey    string
	ProjectID string
	Space     string
}

// BedrockConfig holds the text-generation capability settings. An empty
// region disables prompt-driven generation entirely.
type BedrockConfig struct {
	Region    string
	Model     string
	AccessKey string
	SecretKey string
}

// LoadConfig loads configuration from file and environment variables.
// Environment variables take precedence over the config file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "synthetics_forge")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("storage.kind", "local")
	v.SetDefault("storage.base_dir", "./archives")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_presign_expiry", "15m")

	v.SetDefault("log.level", "info")

	v.SetDefault("elastic.kibana_url", "")
	v.SetDefault("elastic.api_key", "")
	v.SetDefault("elastic.project_id", "mcp-synthetics-demo")
	v.SetDefault("elastic.space", "default")

	v.SetDefault("bedrock.region", "")
	v.SetDefault("bedrock.model", "anthropic.claude-sonnet-4-5")
	v.SetDefault("bedrock.access_key", "")
	v.SetDefault("bedrock.secret_key", "")

	v.SetDefault("workdir", ".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults
	}

	var config Config

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")

	config.Database.Host = v.GetString("database.host")
	config.Database.Port = v.GetInt("database.port")
	config.Database.User = v.GetString("database.user")
	config.Database.Password = v.GetString("database.password")
	config.Database.Database = v.GetString("database.database")
	config.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	config.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")

	config.Storage.Kind = v.GetString("storage.kind")
	config.Storage.BaseDir = v.GetString("storage.base_dir")
	config.Storage.S3Bucket = v.GetString("storage.s3_bucket")
	config.Storage.S3Region = v.GetString("storage.s3_region")
	config.Storage.S3PresignExpiry = v.GetDuration("storage.s3_presign_expiry")

	config.Log.Level = v.GetString("log.level")

	config.Elastic.KibanaURL = v.GetString("elastic.kibana_url")
	config.Elastic.APIKey = v.GetString("elastic.api_key")
	config.Elastic.ProjectID = v.GetString("elastic.project_id")
	config.Elastic.Space = v.GetString("elastic.space")

	config.Bedrock.Region = v.GetString("bedrock.region")
	config.Bedrock.Model = v.GetString("bedrock.model")
	config.Bedrock.AccessKey = v.GetString("bedrock.access_key")
	config.Bedrock.SecretKey = v.GetString("bedrock.secret_key")

	config.Workdir = v.GetString("workdir")

	return &config, nil
}
