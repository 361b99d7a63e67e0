package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultBackendBaseURL = "https://realestate-chatbot-bual.onrender.com/api"

type Config struct {
	Port               string        `yaml:"port"`
	GinMode            string        `yaml:"gin_mode"`
	Backend            BackendConfig `yaml:"backend"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	UploadConfirmDelay time.Duration `yaml:"upload_confirm_delay"`
	Log                LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is the transport timeout for backend calls. Zero means none.
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

func GetConfig() Config {
	return Config{
		Port:    getEnv("PORT", "9090"),
		GinMode: getEnv("GIN_MODE", "release"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", DefaultBackendBaseURL),
			Timeout: getDuration("BACKEND_TIMEOUT", 0),
		},
		SessionTTL:         getDuration("SESSION_TTL", 30*time.Minute),
		UploadConfirmDelay: getDuration("UPLOAD_CONFIRM_DELAY", 600*time.Millisecond),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
