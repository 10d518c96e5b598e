package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/firepolicepension/jsoneditor/internal/fsutil"
	"github.com/firepolicepension/jsoneditor/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the editor,
// e.g. EDITOR_SERVER_PORT.
const EnvPrefix = "EDITOR"

// DefaultDocumentPath is used when neither an argument nor EDITOR_DOCUMENT_PATH
// names the document.
const DefaultDocumentPath = "~/Documents/employees.json"

// Config holds application configuration. It is built once at startup and
// passed by value or pointer to the components that need it; nothing mutates
// it afterwards.
type Config struct {
	Server    ServerConfig
	Document  DocumentConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	MinIO     storage.MinIOConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AdminAddr serves /health, /ready, /metrics and /swagger; empty disables it.
	AdminAddr string
}

// Addr is the editor listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BrowserURL is the address printed for the user to open.
func (s ServerConfig) BrowserURL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port)
}

type DocumentConfig struct {
	// Path is absolute-or-relative but never starts with "~".
	Path string
}

func (d DocumentConfig) Dir() string { return filepath.Dir(d.Path) }

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.admin_addr", "")
	v.SetDefault("document.path", DefaultDocumentPath)
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 20.0)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.use_redis", false)
	v.SetDefault("rate_limit.window_seconds", 1)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
}

// New returns a viper instance reading EDITOR_* variables (and a local .env
// file when present) on top of the defaults.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadConfig builds the configuration from v plus the positional arguments
// [documentPath] [port], which win over everything else.
func LoadConfig(v *viper.Viper, args []string) (*Config, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("expected at most 2 arguments (documentPath, port), got %d", len(args))
	}

	docPath := v.GetString("document.path")
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		docPath = args[0]
	}
	docPath, err := fsutil.ExpandHome(strings.TrimSpace(docPath))
	if err != nil {
		return nil, err
	}
	if docPath == "" {
		return nil, fmt.Errorf("document path is empty")
	}

	port := v.GetInt("server.port")
	if len(args) > 1 {
		port, err = strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", args[1], err)
		}
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port %d out of range", port)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server.host"),
			Port:         port,
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			AdminAddr:    v.GetString("server.admin_addr"),
		},
		Document: DocumentConfig{Path: docPath},
		Log:      LogConfig{Level: v.GetString("log.level")},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("rate_limit.enabled"),
			RPS:           v.GetFloat64("rate_limit.rps"),
			Burst:         v.GetInt("rate_limit.burst"),
			UseRedis:      v.GetBool("rate_limit.use_redis"),
			WindowSeconds: v.GetInt("rate_limit.window_seconds"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		MinIO: storage.MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			UseSSL:    v.GetBool("minio.use_ssl"),
		},
	}
	return cfg, nil
}
