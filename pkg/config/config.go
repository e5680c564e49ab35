// Package config loads busrute settings from the environment, an optional
// .env file and an optional YAML overlay named by BUSRUTE_CONFIG.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/busrute/busrute/pkg/util"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddress string `yaml:"listen_address" validate:"required"`

	ODsay         ODsayConfig         `yaml:"odsay"`
	Kakao         KakaoConfig         `yaml:"kakao"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Sessions      SessionConfig       `yaml:"sessions"`
	Events        EventsConfig        `yaml:"events"`
}

type ODsayConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type KakaoConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	RESTKey string        `yaml:"rest_key"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// RedisConfig leaves Address empty when redis is not in use.
type RedisConfig struct {
	Address  string        `yaml:"address" validate:"omitempty,hostname_port"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database" validate:"gte=0,lte=15"`
	CacheTTL time.Duration `yaml:"cache_ttl" validate:"gt=0"`
}

type ElasticsearchConfig struct {
	Address  string `yaml:"address" validate:"omitempty,url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Index    string `yaml:"index" validate:"required"`
}

type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idle_ttl" validate:"gt=0"`
}

type EventsConfig struct {
	Queue     string `yaml:"queue" validate:"required"`
	BatchSize int64  `yaml:"batch_size" validate:"gt=0"`
}

func Default() *Config {
	return &Config{
		ListenAddress: ":8080",
		ODsay: ODsayConfig{
			BaseURL: "https://api.odsay.com/v1/api",
			Timeout: 10 * time.Second,
		},
		Kakao: KakaoConfig{
			BaseURL: "https://dapi.kakao.com",
			Timeout: 5 * time.Second,
		},
		Redis: RedisConfig{
			CacheTTL: 90 * time.Minute,
		},
		Elasticsearch: ElasticsearchConfig{
			Index: "busrute-composition-events",
		},
		Sessions: SessionConfig{
			IdleTTL: 30 * time.Minute,
		},
		Events: EventsConfig{
			Queue:     "composition-events",
			BatchSize: 200,
		},
	}
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}

func (c *Config) ElasticsearchEnabled() bool {
	return c.Elasticsearch.Address != ""
}

// Load reads .env from the working directory (if any) before the process
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	cfg := Default()

	setString(env, "BUSRUTE_LISTEN_ADDRESS", &cfg.ListenAddress)

	setString(env, "BUSRUTE_ODSAY_URL", &cfg.ODsay.BaseURL)
	setString(env, "BUSRUTE_ODSAY_API_KEY", &cfg.ODsay.APIKey)
	setString(env, "BUSRUTE_KAKAO_URL", &cfg.Kakao.BaseURL)
	setString(env, "BUSRUTE_KAKAO_REST_KEY", &cfg.Kakao.RESTKey)

	setString(env, "BUSRUTE_REDIS_ADDRESS", &cfg.Redis.Address)
	setString(env, "BUSRUTE_REDIS_PASSWORD", &cfg.Redis.Password)

	setString(env, "BUSRUTE_ELASTICSEARCH_ADDRESS", &cfg.Elasticsearch.Address)
	setString(env, "BUSRUTE_ELASTICSEARCH_USERNAME", &cfg.Elasticsearch.Username)
	setString(env, "BUSRUTE_ELASTICSEARCH_PASSWORD", &cfg.Elasticsearch.Password)
	setString(env, "BUSRUTE_ELASTICSEARCH_INDEX", &cfg.Elasticsearch.Index)

	setString(env, "BUSRUTE_EVENTS_QUEUE", &cfg.Events.Queue)

	if err := setInt(env, "BUSRUTE_REDIS_DATABASE", &cfg.Redis.Database); err != nil {
		return nil, err
	}
	if err := setDuration(env, "BUSRUTE_ODSAY_TIMEOUT", &cfg.ODsay.Timeout); err != nil {
		return nil, err
	}
	if err := setDuration(env, "BUSRUTE_KAKAO_TIMEOUT", &cfg.Kakao.Timeout); err != nil {
		return nil, err
	}
	if err := setDuration(env, "BUSRUTE_REDIS_CACHE_TTL", &cfg.Redis.CacheTTL); err != nil {
		return nil, err
	}
	if err := setDuration(env, "BUSRUTE_SESSION_TTL", &cfg.Sessions.IdleTTL); err != nil {
		return nil, err
	}

	if path := env["BUSRUTE_CONFIG"]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setString(env map[string]string, key string, target *string) {
	if value := env[key]; value != "" {
		*target = value
	}
}

func setInt(env map[string]string, key string, target *int) error {
	value := env[key]
	if value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = n

	return nil
}

// setDuration accepts Go durations ("15s") or a bare number of seconds.
func setDuration(env map[string]string, key string, target *time.Duration) error {
	value := env[key]
	if value == "" {
		return nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		*target = time.Duration(seconds) * time.Second
		return nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = d

	return nil
}
