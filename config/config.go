package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for detection and loop behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Fire pacing: minimum number of frames between two fire actions.
	DeadzoneFrames int `json:"deadzone_frames"`

	// Loop pacing and detection timeouts.
	TickIntervalMS int `json:"tick_interval_ms"`
	StallTimeoutMS int `json:"stall_timeout_ms"`
	MissTimeoutMS  int `json:"miss_timeout_ms"`

	// Reference colors as "#rrggbb" strings.
	FieldColor string `json:"field_color"`
	BallColor  string `json:"ball_color"`

	// Diagnostic snapshot written when no ball is ever found.
	SnapshotPath string `json:"snapshot_path"`

	// DisableHotkeys skips installing the global F10 stop hook.
	DisableHotkeys bool `json:"disable_hotkeys"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		DeadzoneFrames: 1,
		TickIntervalMS: 1,
		StallTimeoutMS: 2000,
		MissTimeoutMS:  2000,
		FieldColor:     "#fbf9f6",
		BallColor:      "#2c3d51",
		SnapshotPath:   "no-ball-proof.png",
		DisableHotkeys: false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DeadzoneFrames < 0 {
		c.DeadzoneFrames = 1
	}
	if c.TickIntervalMS < 1 {
		c.TickIntervalMS = 1
	}
	if c.StallTimeoutMS <= 0 {
		c.StallTimeoutMS = 2000
	}
	if c.MissTimeoutMS <= 0 {
		c.MissTimeoutMS = 2000
	}
	if c.FieldColor == "" {
		c.FieldColor = "#fbf9f6"
	}
	if c.BallColor == "" {
		c.BallColor = "#2c3d51"
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = "no-ball-proof.png"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
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
