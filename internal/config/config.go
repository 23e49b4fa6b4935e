package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic service settings.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

// FirestoreConfig holds the connection settings for the document store. If
// CredentialsFile is empty, the client falls back to application default
// credentials.
type FirestoreConfig struct {
	ProjectID              string `toml:"projectId"`
	CredentialsFile        string `toml:"credentialsFile"`
	ContactsCollection     string `toml:"contactsCollection"`
	InteractionsCollection string `toml:"interactionsCollection"`
}

// JWTConfig holds the settings for verifying the bearer tokens issued by the
// identity provider in front of this service.
type JWTConfig struct {
	Secret string `toml:"secret"`
}

// LogConfig holds the log output settings.
type LogConfig struct {
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"`
	Level      string `toml:"level"`
}

// CORSConfig holds the origins the browser dashboard is served from.
type CORSConfig struct {
	AllowOrigins []string `toml:"allowOrigins"`
}

// Config aggregates all sub-configurations.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	FirestoreConfig `toml:"firestoreConfig"`
	JWTConfig       `toml:"jwtConfig"`
	LogConfig       `toml:"logConfig"`
	CORSConfig      `toml:"corsConfig"`
}

// searchPaths are the candidate locations of the configuration file, tried in
// order. The relative variants cover binaries started from a cmd directory.
var searchPaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// Load reads the configuration file from the first search path that works,
// then applies defaults and environment variable overrides. The environment
// wins over the file so that credentials never have to live in the repo.
func Load() (*Config, error) {
	cfg := &Config{}
	found := false
	for _, path := range searchPaths {
		if _, err := toml.DecodeFile(path, cfg); err == nil {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("could not find configuration file in any of the search paths")
	}
	cfg.applyDefaults()
	cfg.applyEnvironment()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.AppName == "" {
		cfg.AppName = "crm-service"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ContactsCollection == "" {
		cfg.ContactsCollection = "contacts"
	}
	if cfg.InteractionsCollection == "" {
		cfg.InteractionsCollection = "interactions"
	}
	if cfg.LogConfig.FileName == "" {
		cfg.LogConfig.FileName = "logs/crm-service.log"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
}

func (cfg *Config) applyEnvironment() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Secret = v
	}
}
