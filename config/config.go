package config

import (
	"encoding/json"
	"os"

	"github.com/adrg/xdg"

	"github.com/tvoss/image-measure-go/domain/measure"
)

// Config holds runtime configuration for the measurement client.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Measurement service
	ServerURL            string `json:"server_url"`
	RequestTimeoutMillis int    `json:"request_timeout_millis"`
	DebounceMillis       int    `json:"debounce_millis"`
	PersistSessions      bool   `json:"persist_sessions"`
	// Discard measurement responses from superseded requests instead of
	// letting the last arrival win.
	DiscardStaleResponses bool `json:"discard_stale_responses"`

	// Display
	UnitName    string `json:"unit_name"`
	PreviewMaxW int    `json:"preview_max_w"`
	PreviewMaxH int    `json:"preview_max_h"`
	DarkMode    bool   `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		ServerURL:             "http://127.0.0.1:8000",
		RequestTimeoutMillis:  0,
		DebounceMillis:        200,
		PersistSessions:       false,
		DiscardStaleResponses: false,
		UnitName:              measure.UnitPixels,
		PreviewMaxW:           900,
		PreviewMaxH:           600,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		c.ServerURL = "http://127.0.0.1:8000"
	}
	if c.RequestTimeoutMillis < 0 {
		c.RequestTimeoutMillis = 0
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = 200
	}
	if !measure.KnownUnit(c.UnitName) {
		c.UnitName = measure.UnitPixels
	}
	if c.PreviewMaxW < 200 {
		c.PreviewMaxW = 900
	}
	if c.PreviewMaxH < 200 {
		c.PreviewMaxH = 600
	}
	return nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	path, err := xdg.ConfigFile("image-measure/config.json")
	if err != nil {
		return "config.json"
	}
	return path
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
