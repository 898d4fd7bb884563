package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Addr               string `yaml:"addr"`
	BaseURL            string `yaml:"base_url"`
	Env                string `yaml:"env"` // "local" disables real email delivery
	Mongo              Mongo  `yaml:"mongo"`
	SessionTTLSeconds  int    `yaml:"session_ttl_seconds"`
	TokenMaxAgeSeconds int    `yaml:"token_max_age_seconds"`
	SecureCookies      bool   `yaml:"secure_cookies"`
	AllowedOrigin      string `yaml:"allowed_origin"`
	LogLevel           string `yaml:"log_level"`
	LogFormat          string `yaml:"log_format"`
}

type Mongo struct {
	URI    string `yaml:"uri"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	JwtKey       string `yaml:"jwt_key"`
	SecretKey    string `yaml:"secret_key"`
	PasswordSalt string `yaml:"security_password_salt"`
	Resend       Resend `yaml:"resend"`
}

type Resend struct {
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) SecretKey() string {
	return s.private.SecretKey
}

func (s *Config) PasswordSalt() string {
	return s.private.PasswordSalt
}

func (s *Config) Resend() Resend {
	return s.private.Resend
}

func (s *Config) SessionTTL() time.Duration {
	return time.Duration(s.Public.SessionTTLSeconds) * time.Second
}

func (s *Config) TokenMaxAge() time.Duration {
	return time.Duration(s.Public.TokenMaxAgeSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (s *Config) applyDefaults() {
	if s.Public.Addr == "" {
		s.Public.Addr = ":8080"
	}
	if s.Public.SessionTTLSeconds == 0 {
		s.Public.SessionTTLSeconds = 24 * 60 * 60
	}
	if s.Public.TokenMaxAgeSeconds == 0 {
		s.Public.TokenMaxAgeSeconds = 3600
	}
	if s.Public.LogLevel == "" {
		s.Public.LogLevel = "info"
	}
}

// NewForTesting builds a config without yaml files. Test helper.
func NewForTesting(public Public, private Private) *Config {
	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}
