package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Batch    BatchConfig    `mapstructure:"batch"`
}

// RegistryConfig holds the single startup parameter of the loan registry.
// A zero MaxRecords means "ask the operator" in console mode.
type RegistryConfig struct {
	MaxRecords         int  `mapstructure:"maxRecords"`
	EnforceEligibility bool `mapstructure:"enforceEligibility"`
}

type ServerConfig struct {
	Port         int             `mapstructure:"port"`
	ReadTimeout  time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout time.Duration   `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration   `mapstructure:"idleTimeout"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
	Auth         AuthConfig      `mapstructure:"auth"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwtSecret"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Output   string `mapstructure:"output"`
}

type MetricsConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RabbitMQConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	ExchangeName string `mapstructure:"exchangeName"`
}

type BatchConfig struct {
	AuditSchedule string        `mapstructure:"auditSchedule"`
	AuditTimeout  time.Duration `mapstructure:"auditTimeout"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("registry.maxRecords", 0)
	v.SetDefault("registry.enforceEligibility", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 15*time.Second)
	v.SetDefault("server.idleTimeout", 60*time.Second)
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.rps", 10)
	v.SetDefault("server.rateLimit.burst", 20)
	v.SetDefault("server.auth.enabled", false)
	v.SetDefault("server.auth.jwtSecret", "")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.username", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.exchangeName", "xyzbank")
	v.SetDefault("batch.auditSchedule", "@every 5m")
	v.SetDefault("batch.auditTimeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
