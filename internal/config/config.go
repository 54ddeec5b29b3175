package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

func homeDirOrFallback() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

const (
	DriverHTTP   = "http"
	DriverChrome = "chrome"
)

// Config holds all user-configurable settings.
type Config struct {
	// ResultsURL is the results listing page to scrape.
	ResultsURL string `json:"results_url"`
	// Driver selects how pages are fetched: "http" or "chrome".
	Driver string `json:"driver"`
	// RequestsPerSecond rate-limits HTTP requests.
	RequestsPerSecond float64 `json:"requests_per_second"`
	// WaitTimeoutSeconds bounds how long the browser waits for page elements.
	WaitTimeoutSeconds int `json:"wait_timeout_seconds"`
	// UserAgent is sent with every request.
	UserAgent string `json:"user_agent"`
	// SponsorGroups lists token groups; an event matching every token of one group is a pro event.
	SponsorGroups [][]string `json:"sponsor_groups"`
	// FavoriteTeams are listed regardless of event.
	FavoriteTeams []string `json:"favorite_teams"`
	// EnglishCountries are stream flag countries treated as English.
	EnglishCountries []string `json:"english_countries"`
	// TeamColorMap maps team names to display colors.
	TeamColorMap map[string]string `json:"team_colors"`
	// TeamColorsFile optionally points to a JSON or YAML file of team colors.
	TeamColorsFile string `json:"team_colors_file,omitempty"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ResultsURL:         "https://www.hltv.org/results",
		Driver:             DriverChrome,
		RequestsPerSecond:  1.0,
		WaitTimeoutSeconds: 10,
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		SponsorGroups: [][]string{
			{"ESL", "Pro"},
			{"ESL", "One"},
			{"ECS"},
			{"PGL"},
			{"Dreamhack"},
			{"FACEIT"},
			{"EPICENTER", "Americas"},
		},
		FavoriteTeams:    []string{"GX", "Torqued"},
		EnglishCountries: []string{"United States", "United Kingdom", "Canada", "USA"},
		TeamColorMap:     map[string]string{},
	}
}

// WaitTimeout returns the element wait bound as a duration.
func (c *Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.WaitTimeoutSeconds) * time.Second
}

// ConfigDir returns the directory where config files are stored.
func ConfigDir() string {
	if dir := os.Getenv("NOSPOILERS_CONFIG_DIR"); dir != "" {
		return dir
	}
	home := homeDirOrFallback()
	return filepath.Join(home, ".config", "nospoilers")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads config from disk, returning defaults if the file doesn't exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0o644)
}
