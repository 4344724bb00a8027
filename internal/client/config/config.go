package config

// Config holds runtime settings for the check-in admin console.
//
// Fields:
//   - ServerURL: base URL of the check-in server's REST API.
//   - LogFile: where structured logs go; stdout belongs to the console UI.
type Config struct {
	ServerURL string
	LogFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.LogFile = "console.log"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
