package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Placeholder values written into an auto-generated config file. Loading a
// config that still carries them is a configuration error.
const (
	PlaceholderAccessToken = "YOUR_ACCESS_TOKEN_HERE"
	PlaceholderPersonID    = "YOUR_PERSON_ID_HERE"
)

// ErrConfigCreated is returned by Load when no config file existed and a
// placeholder one was written for the user to fill in.
var ErrConfigCreated = errors.New("config file did not exist, a placeholder was created")

// Env holds process-level settings read from environment variables.
// Runtime posting settings live in the JSON config file instead (see Config).
type Env struct {
	AppEnv          string
	Debug           bool
	Version         string
	SentryDSN       string
	Language        string
	ConfigPath      string
	CredentialsPath string
	MongoDBURI      string
	MongoDBDatabase string
}

// LoadEnv loads process settings from environment variables.
// It attempts to load a .env file if present but prioritizes
// actual environment variables set in the system.
func LoadEnv() *Env {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	env := &Env{
		AppEnv:          getEnv("APP_ENV", "development"),
		Debug:           debug,
		Version:         getEnv("VERSION", "dev"),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
		Language:        getEnv("LANGUAGE", "en"),
		ConfigPath:      getEnv("CONFIG_PATH", "config.json"),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "linkedin_credentials.json"),
		MongoDBURI:      getEnv("MONGODB_URI", ""),
		MongoDBDatabase: getEnv("MONGODB_DATABASE", "linkedin_poster"),
	}

	if env.SentryDSN == "" {
		log.Println("Warning: SENTRY_DSN is not set. Error tracking disabled.")
	}
	if env.MongoDBURI == "" {
		log.Println("Warning: MONGODB_URI is not set. Post log mirroring disabled.")
	}

	return env
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Config mirrors the JSON config file produced by the authorization flow.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	AccessToken         string   `json:"linkedin_access_token"`
	PersonID            string   `json:"linkedin_person_id"`
	PostIntervalMinutes int      `json:"post_interval_minutes"`
	RandomDelayMinutes  int      `json:"random_delay_minutes"`
	Topics              []string `json:"topics"`
	MaxPostsPerDay      int      `json:"max_posts_per_day"`
	WorkingHoursOnly    bool     `json:"working_hours_only"`
	WorkingHoursStart   int      `json:"working_hours_start"`
	WorkingHoursEnd     int      `json:"working_hours_end"`
	PostImmediately     bool     `json:"post_immediately"`
}

// Default returns a Config with the default posting schedule and the full
// default topic list. Credential fields are left as placeholders.
func Default() *Config {
	return &Config{
		AccessToken:         PlaceholderAccessToken,
		PersonID:            PlaceholderPersonID,
		PostIntervalMinutes: 60,
		RandomDelayMinutes:  15,
		Topics: []string{
			"seguranca_da_informacao",
			"forense_computacional",
			"forense_digital",
			"ciberseguranca",
			"golpes_digitais",
		},
		MaxPostsPerDay:    24,
		WorkingHoursOnly:  false,
		WorkingHoursStart: 9,
		WorkingHoursEnd:   18,
		PostImmediately:   false,
	}
}

// Load reads the config file at path. If the file does not exist, a
// placeholder config is written there and ErrConfigCreated is returned so the
// caller can tell the user to fill it in. Validation errors are fatal to the
// caller: the scheduler must not start on an incomplete config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if saveErr := cfg.Save(path); saveErr != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", saveErr)
		}
		log.Printf("Default config file created: %s", path)
		return nil, ErrConfigCreated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.AccessToken == "" || c.AccessToken == PlaceholderAccessToken {
		return fmt.Errorf("linkedin_access_token is required, run the token configuration first")
	}
	if c.PersonID == "" || c.PersonID == PlaceholderPersonID {
		return fmt.Errorf("linkedin_person_id is required, run the token configuration first")
	}
	if c.PostIntervalMinutes <= 0 {
		return fmt.Errorf("post_interval_minutes must be positive, got %d", c.PostIntervalMinutes)
	}
	if c.RandomDelayMinutes < 0 {
		return fmt.Errorf("random_delay_minutes must not be negative, got %d", c.RandomDelayMinutes)
	}
	if c.MaxPostsPerDay < 0 {
		return fmt.Errorf("max_posts_per_day must not be negative, got %d", c.MaxPostsPerDay)
	}
	if c.WorkingHoursStart < 0 || c.WorkingHoursStart >= 24 {
		return fmt.Errorf("working_hours_start must be in [0,24), got %d", c.WorkingHoursStart)
	}
	if c.WorkingHoursEnd < 0 || c.WorkingHoursEnd >= 24 {
		return fmt.Errorf("working_hours_end must be in [0,24), got %d", c.WorkingHoursEnd)
	}
	return nil
}

// Interval returns the wall-clock interval between posting cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PostIntervalMinutes) * time.Minute
}

// JitterCeiling returns the upper bound for the random delay inserted before
// publishing. Zero disables the jitter.
func (c *Config) JitterCeiling() time.Duration {
	return time.Duration(c.RandomDelayMinutes) * time.Minute
}

// Credentials holds the OAuth application credentials used by the
// authorization flow.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// LoadCredentials reads the credentials file at path. A missing file is
// reported through os.ErrNotExist so the caller can fall back to prompting.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	return &creds, nil
}

// Save writes the credentials to path as indented JSON.
func (c *Credentials) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	return nil
}
