package config

import (
	"time"

	"github.com/apoiacoletivo/acs/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	InfinitePay InfinitePayConfig `mapstructure:"infinitepay"`
	Bridge      BridgeConfig      `mapstructure:"bridge"`
	Task        TaskConfig        `mapstructure:"task"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// InfinitePayConfig configures the payment provider client.
type InfinitePayConfig struct {
	BaseURL string        `mapstructure:"base_url"` // provider API root
	Timeout time.Duration `mapstructure:"timeout"`  // per-request bound
}

// BridgeConfig bounds the in-app payment bridge.
type BridgeConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"` // availability poll step
	MaxAttempts  int           `mapstructure:"max_attempts"`  // availability poll attempts
	SendTimeout  time.Duration `mapstructure:"send_timeout"`  // bound on a single checkout send
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // seconds
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, file
	File   string `mapstructure:"file"`   // log file path when output is file
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/acs")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "apoiacoletivo")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("infinitepay.base_url", "https://api.infinitepay.io")
	viper.SetDefault("infinitepay.timeout", "30s")
	viper.SetDefault("bridge.poll_interval", "100ms")
	viper.SetDefault("bridge.max_attempts", 20)
	viper.SetDefault("bridge.send_timeout", "2m")
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
