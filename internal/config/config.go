package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	JWT      JWT      `yaml:"jwt"`
	Feed     Feed     `yaml:"feed"`
	Minio    Minio    `yaml:"minio"`
	Log      Log      `yaml:"log"`
}

type Server struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug / release / test
}

type Database struct {
	Driver string `yaml:"driver"` // mysql / postgres / sqlite
	DSN    string `yaml:"dsn"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
}

type Feed struct {
	PageSize int           `yaml:"page_size"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty: stdout
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default 开发环境默认值，空配置文件也能启动
func Default() *Config {
	return &Config{
		Server: Server{
			Addr: ":8080",
			Mode: "debug",
		},
		Database: Database{
			Driver: "mysql",
			DSN:    "user:password@tcp(127.0.0.1:3306)/yatube?charset=utf8mb4&parseTime=True",
		},
		Redis: Redis{
			Addr: "127.0.0.1:6379",
		},
		JWT: JWT{
			AccessSecret:  "secret-key",
			RefreshSecret: "refresh-key",
			AccessTTL:     30 * time.Minute,
			RefreshTTL:    24 * time.Hour,
		},
		Feed: Feed{
			PageSize: 10,
			CacheTTL: 20 * time.Second,
		},
		Minio: Minio{
			Endpoint: "127.0.0.1:9000",
			Bucket:   "yatube",
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if config.Feed.PageSize <= 0 {
		config.Feed.PageSize = 10
	}
	return config, nil
}
