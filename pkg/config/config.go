package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"sfd-intake/pkg/models"
)

// Names of the settings the store needs. Reported back to callers when absent.
const (
	SettingClientEmail = "GOOGLE_CLIENT_EMAIL"
	SettingPrivateKey  = "GOOGLE_PRIVATE_KEY"
	SettingSheetID     = "GOOGLE_SHEET_ID"
)

const (
	DefaultPort           = "8080"
	DefaultTimezone       = "Africa/Lagos"
	DefaultSheetName      = "Sheet1"
	DefaultTimeoutSeconds = 30
)

// Config holds all application configuration values
type Config struct {
	Port           string   `toml:"port"`
	Mode           string   `toml:"mode"`
	Timezone       string   `toml:"timezone"`
	AllowedOrigins []string `toml:"allowed_origins"`

	Google      GoogleConfig `toml:"google"`
	Lead        TargetConfig `toml:"lead"`
	Scholarship TargetConfig `toml:"scholarship"`
	Volunteer   TargetConfig `toml:"volunteer"`

	location *time.Location
}

// GoogleConfig holds the service account and the default spreadsheet.
// PrivateKey is only ever read from the environment.
type GoogleConfig struct {
	ClientEmail    string `toml:"client_email"`
	PrivateKey     string `toml:"-"`
	SheetID        string `toml:"sheet_id"`
	SheetName      string `toml:"sheet_name"`
	Endpoint       string `toml:"endpoint"`
	TokenURL       string `toml:"token_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// TargetConfig overrides the spreadsheet or tab a single form writes to
type TargetConfig struct {
	SheetID   string `toml:"sheet_id"`
	SheetName string `toml:"sheet_name"`
}

// Target is the resolved spreadsheet location for a form variant
type Target struct {
	SpreadsheetID string
	SheetName     string
}

// LoadConfig reads the optional TOML file at path, then applies environment
// variable overrides.
func LoadConfig(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:     DefaultPort,
		Mode:     "release",
		Timezone: DefaultTimezone,
		Google: GoogleConfig{
			SheetName:      DefaultSheetName,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	setString(&cfg.Port, getenv("PORT"))
	setString(&cfg.Mode, getenv("GIN_MODE"))
	setString(&cfg.Timezone, getenv("TIMEZONE"))
	setString(&cfg.Google.ClientEmail, getenv(SettingClientEmail))
	setString(&cfg.Google.SheetID, getenv(SettingSheetID))
	setString(&cfg.Google.SheetName, getenv("SHEET_NAME"))
	setString(&cfg.Lead.SheetID, getenv("LEAD_SHEET_ID"))
	setString(&cfg.Scholarship.SheetID, getenv("SCHOLARSHIP_SHEET_ID"))
	setString(&cfg.Volunteer.SheetID, getenv("VOLUNTEER_SHEET_ID"))

	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if v := getenv("SHEETS_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config SHEETS_TIMEOUT_SECONDS must be a positive integer, got %q", v)
		}
		cfg.Google.TimeoutSeconds = n
	}

	// Keys pasted into env files usually carry escaped newlines
	cfg.Google.PrivateKey = strings.ReplaceAll(getenv(SettingPrivateKey), `\n`, "\n")

	switch cfg.Mode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("config mode value is invalid, must be one of \"debug\", \"release\" or \"test\"")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config timezone %q is invalid: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.Google.SheetName == "" {
		cfg.Google.SheetName = DefaultSheetName
	}
	if cfg.Google.TimeoutSeconds <= 0 {
		cfg.Google.TimeoutSeconds = DefaultTimeoutSeconds
	}

	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Location is the timezone submission timestamps are rendered in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Timeout bounds each HTTP call made to the Sheets API.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Google.TimeoutSeconds) * time.Second
}

// Target resolves where rows of the given variant are appended.
func (c *Config) Target(v models.FormVariant) Target {
	var override TargetConfig
	switch v {
	case models.Lead:
		override = c.Lead
	case models.ScholarshipGrant:
		override = c.Scholarship
	case models.Volunteer:
		override = c.Volunteer
	}

	t := Target{SpreadsheetID: c.Google.SheetID, SheetName: c.Google.SheetName}
	setString(&t.SpreadsheetID, override.SheetID)
	setString(&t.SheetName, override.SheetName)
	return t
}

// StoreSettings reports whether each required store setting is present for
// the variant. Values are never included.
func (c *Config) StoreSettings(v models.FormVariant) map[string]bool {
	return map[string]bool{
		SettingClientEmail: c.Google.ClientEmail != "",
		SettingPrivateKey:  c.Google.PrivateKey != "",
		SettingSheetID:     c.Target(v).SpreadsheetID != "",
	}
}

// MissingStoreSettings names the absent store settings for the variant, in a
// stable order.
func (c *Config) MissingStoreSettings(v models.FormVariant) []string {
	settings := c.StoreSettings(v)
	var missing []string
	for _, name := range []string{SettingClientEmail, SettingPrivateKey, SettingSheetID} {
		if !settings[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
