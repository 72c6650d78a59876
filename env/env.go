package env

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Source  string        `mapstructure:"source"`
	Backend BackendConfig `mapstructure:"backend"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mask    MaskConfig    `mapstructure:"mask"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port"`
	Mode       string        `mapstructure:"mode"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Sessions   int           `mapstructure:"sessions"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BackendConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

type MongoDBConfig struct {
	URI     string        `mapstructure:"uri"`
	DB      string        `mapstructure:"db"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MaskConfig struct {
	TTL  time.Duration `mapstructure:"ttl"`
	Size int           `mapstructure:"size"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	PageSize int           `mapstructure:"page_size"`
}

type AuthConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	VerifyTTL  time.Duration `mapstructure:"verify_ttl"`
	LoginRate  string        `mapstructure:"login_rate"`
	Secure     bool          `mapstructure:"secure"`

	// Secret verifies admin tokens locally when set. Tokens are checked with the backend otherwise.
	Secret string `mapstructure:"secret"`
}

const (
	SourceREST  = "rest"
	SourceMongo = "mongo"
)

var (
	setupOnce sync.Once
	env       Env
	envErr    error
)

// GetEnv loads the configuration once per process from config.yaml and PEPONI_* variables.
func GetEnv() (*Env, error) {

	setupOnce.Do(func() {
		env, envErr = Load(viper.New())
	})

	if envErr != nil {
		return nil, envErr
	}

	return &env, nil
}

// Load reads configuration through v. Callers may preset a config file on v.
func Load(v *viper.Viper) (Env, error) {

	if v.ConfigFileUsed() == "" {

		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("PEPONI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {

		//NOTE: Missing file is fine, defaults and env vars still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Env{}, err
		}
	}

	var loaded Env
	if err := v.Unmarshal(&loaded); err != nil {
		return Env{}, err
	}

	return loaded, nil
}

func setDefaults(v *viper.Viper) {

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("server.sessions", 1024)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source", SourceREST)

	v.SetDefault("backend.base_url", "http://localhost:9000")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.retry_count", 0)

	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.db", "peponi_admin")
	v.SetDefault("mongodb.timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")

	v.SetDefault("mask.ttl", 24*time.Hour)
	v.SetDefault("mask.size", 4096)

	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 30*time.Second)

	v.SetDefault("search.debounce", 500*time.Millisecond)
	v.SetDefault("search.page_size", 10)

	v.SetDefault("auth.cookie_name", "AdminToken")
	v.SetDefault("auth.verify_ttl", time.Minute)
	v.SetDefault("auth.login_rate", "10-M")
	v.SetDefault("auth.secure", false)
	v.SetDefault("auth.secret", "")
}
