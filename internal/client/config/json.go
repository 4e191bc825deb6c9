package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/phonebook/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards.
type JsonConfig struct {
	ServerBaseURL string `json:"server_base_url"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c/-config flags. Missing flag means no JSON is loaded.
// Read or unmarshal errors panic; intended usage is defaults -> parseJson ->
// parseFlags, where later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
}
