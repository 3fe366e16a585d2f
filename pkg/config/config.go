package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultServerPort is the ElorServ port. The legacy 9999 fallback of older
// properties files is not honoured.
const DefaultServerPort = 9000

type Config struct {
	Env  string
	Port int

	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	Gateway  GatewayConfig
	Queue    QueueConfig
	Schedule ScheduleConfig
	Redis    RedisConfig
	Avatar   AvatarConfig
	Exports  ExportsConfig
}

// ServerConfig locates the scheduling server.
type ServerConfig struct {
	Host        string
	Port        int
	DialTimeout time.Duration
	// IOTimeout bounds a single exchange. Zero keeps reads fully blocking.
	IOTimeout time.Duration
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// GatewayConfig configures the local HTTP gateway bearer tokens.
type GatewayConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// QueueConfig sizes the single-worker exchange queue.
type QueueConfig struct {
	BufferSize int
}

// ScheduleConfig maps wall-clock hours onto timetable periods.
type ScheduleConfig struct {
	FirstPeriodHour int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AvatarConfig governs avatar fetching and its optional cache.
type AvatarConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	MaxBytes     int64
}

// ExportsConfig controls where grid exports are written.
type ExportsConfig struct {
	Dir string
}

// Load reads .env (optional) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return FromViper(v), nil
}

// FromViper builds a Config from an already populated viper instance. The
// CLI uses it after binding its flags.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Server = ServerConfig{
		Host:        v.GetString("SERVER_HOST"),
		Port:        v.GetInt("SERVER_PORT"),
		DialTimeout: parseDuration(v.GetString("SERVER_DIAL_TIMEOUT"), 5*time.Second),
		IOTimeout:   parseDuration(v.GetString("SERVER_IO_TIMEOUT"), 0),
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = DefaultServerPort
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Gateway = GatewayConfig{
		TokenSecret: v.GetString("GATEWAY_TOKEN_SECRET"),
		TokenTTL:    parseDuration(v.GetString("GATEWAY_TOKEN_TTL"), 12*time.Hour),
	}

	cfg.Queue = QueueConfig{BufferSize: v.GetInt("QUEUE_BUFFER_SIZE")}

	cfg.Schedule = ScheduleConfig{FirstPeriodHour: v.GetInt("SCHEDULE_FIRST_PERIOD_HOUR")}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	maxAvatar := v.GetInt64("AVATAR_MAX_BYTES")
	if maxAvatar <= 0 {
		maxAvatar = 2 * 1024 * 1024
	}
	cfg.Avatar = AvatarConfig{
		CacheEnabled: v.GetBool("ENABLE_AVATAR_CACHE"),
		CacheTTL:     parseDuration(v.GetString("AVATAR_CACHE_TTL"), time.Hour),
		FetchTimeout: parseDuration(v.GetString("AVATAR_FETCH_TIMEOUT"), 5*time.Second),
		MaxBytes:     maxAvatar,
	}

	cfg.Exports = ExportsConfig{Dir: v.GetString("EXPORTS_DIR")}

	return cfg
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", DefaultServerPort)
	v.SetDefault("SERVER_DIAL_TIMEOUT", "5s")
	v.SetDefault("SERVER_IO_TIMEOUT", "0s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "")

	v.SetDefault("GATEWAY_TOKEN_SECRET", "dev_gateway_secret")
	v.SetDefault("GATEWAY_TOKEN_TTL", "12h")

	v.SetDefault("QUEUE_BUFFER_SIZE", 16)
	v.SetDefault("SCHEDULE_FIRST_PERIOD_HOUR", 1)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_AVATAR_CACHE", false)
	v.SetDefault("AVATAR_CACHE_TTL", "1h")
	v.SetDefault("AVATAR_FETCH_TIMEOUT", "5s")
	v.SetDefault("AVATAR_MAX_BYTES", 2*1024*1024)

	v.SetDefault("EXPORTS_DIR", "./exports")
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory") ||
		strings.Contains(err.Error(), "cannot find the file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
