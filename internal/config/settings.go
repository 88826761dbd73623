package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

// ProviderConfig describes one external speech service endpoint.
// Backend selects the client implementation: "http" (generic bearer-token
// HTTP API) or "openai".
type ProviderConfig struct {
	Backend     string `mapstructure:"backend"`
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 300 * time.Second
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

type ProvidersConfig struct {
	STT ProviderConfig `mapstructure:"stt"`
	TTS ProviderConfig `mapstructure:"tts"`
}

type StorageConfig struct {
	Root string `mapstructure:"root"`
}

type QueueConfig struct {
	Concurrency        int   `mapstructure:"concurrency"`
	MaxAttempts        int   `mapstructure:"max_attempts"`
	RetryDelaySecs     []int `mapstructure:"retry_delay_secs"`
	AttemptTimeoutSecs int   `mapstructure:"attempt_timeout_secs"`
}

func (q QueueConfig) Attempts() int {
	if q.MaxAttempts <= 0 {
		return 3
	}
	return q.MaxAttempts
}

func (q QueueConfig) RetryDelays() []time.Duration {
	secs := q.RetryDelaySecs
	if len(secs) == 0 {
		secs = []int{30, 60, 120}
	}
	delays := make([]time.Duration, len(secs))
	for i, s := range secs {
		delays[i] = time.Duration(s) * time.Second
	}
	return delays
}

func (q QueueConfig) AttemptTimeout() time.Duration {
	if q.AttemptTimeoutSecs <= 0 {
		return 600 * time.Second
	}
	return time.Duration(q.AttemptTimeoutSecs) * time.Second
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type Settings struct {
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
	Env       string          `mapstructure:"env"`
	Debug     bool            `mapstructure:"debug" default:"false"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
