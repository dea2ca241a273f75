package config

import (
	"fmt"
	"time"
)

// Config application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Import   ImportConfig   `mapstructure:"import"`
}

// ServerConfig http server
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress returns host:port
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig database connection. Type is one of sqlite, postgres, mysql.
// Path is used by sqlite, DSN by the others.
type DatabaseConfig struct {
	Type    string `mapstructure:"type"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

// RedisConfig redis connection, used for the per-bucket recompute lock
type RedisConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	DB             int    `mapstructure:"db"`
	Password       string `mapstructure:"password"`
	LockTTLSeconds int    `mapstructure:"lock_ttl_seconds"`
}

// GetAddress returns host:port
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetLockTTL lock expiry
func (r *RedisConfig) GetLockTTL() time.Duration {
	return time.Duration(r.LockTTLSeconds) * time.Second
}

// JWTConfig token signing
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration token lifetime
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// AdminConfig first admin account and the password applied on reset
type AdminConfig struct {
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	ResetPassword string `mapstructure:"reset_password"`
}

// CORSConfig CORS
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// LogConfig logging. Output is stdout or file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// MetricsConfig prometheus
type MetricsConfig struct {
	Enabled   bool      `mapstructure:"enabled"`
	Namespace string    `mapstructure:"namespace"`
	Buckets   []float64 `mapstructure:"buckets"`
}

// ImportConfig spreadsheet upload limits
type ImportConfig struct {
	MaxUploadMB int `mapstructure:"max_upload_mb"`
	MaxRows     int `mapstructure:"max_rows"`
}

// GetMaxUploadBytes upload size limit in bytes
func (i *ImportConfig) GetMaxUploadBytes() int64 {
	return int64(i.MaxUploadMB) << 20
}
