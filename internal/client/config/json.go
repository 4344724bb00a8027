package config

import (
	"encoding/json"
	"os"

	"github.com/timmyz/newlongfor/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// stay at their zero value and do not override the defaults.
type jsonConfig struct {
	ServerURL string `json:"server_url"`
	LogFile   string `json:"log_file"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// No flag means no JSON is loaded. Read or unmarshal errors panic: a config
// file that is named but unusable is a startup fault, not a runtime one.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
}
