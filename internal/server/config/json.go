package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/phonebook/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards. The session TTL is given as an
// integer number of minutes.
type JsonConfig struct {
	EndpointAddr      string `json:"endpoint_addr"`
	DatabaseDSN       string `json:"database_dsn"`
	SecretKey         string `json:"secret_key"`
	SessionTTLMinutes int    `json:"session_ttl_minutes"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c/-config flags. Missing flag means no JSON is loaded.
// Read or unmarshal errors panic; intended usage is defaults -> parseJson ->
// parseFlags, where later stages override earlier ones.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTTLMinutes > 0 {
		config.SessionTTL = time.Duration(c.SessionTTLMinutes) * time.Minute
	}
}
