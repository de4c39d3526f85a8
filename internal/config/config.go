package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env     string `env:"ENV" env-required:"true"`
	HTTP    HTTPConfig
	Store   StoreConfig
	Suggest SuggestConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"localhost"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type StoreConfig struct {
	Path        string        `env:"STORE_PATH" env-default:"taskboard.db"`
	PingTimeout time.Duration `env:"STORE_PING_TIMEOUT" env-default:"10s"`
	LoadTimeout time.Duration `env:"STORE_LOAD_TIMEOUT" env-default:"10s"`
}

type SuggestConfig struct {
	APIKey  string        `env:"SUGGEST_API_KEY"`
	BaseURL string        `env:"SUGGEST_BASE_URL"`
	Model   string        `env:"SUGGEST_MODEL"`
	Timeout time.Duration `env:"SUGGEST_TIMEOUT" env-default:"30s"`
}
