package config

import (
	"encoding/json"
	"os"

	"github.com/filmstack/idm/internal/flagx"
	"github.com/filmstack/idm/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields use timex.Duration, which accepts both string values
// such as "30m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SigningKeyFile          string         `json:"signing_key_file"`
	AccessTokenExpire       timex.Duration `json:"access_token_expire"`
	RefreshTokenExpire      timex.Duration `json:"refresh_token_expire"`
	MaxRefreshTokenLifeTime timex.Duration `json:"max_refresh_token_life_time"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config flags; when neither is set
// no file is loaded. A file that cannot be read or parsed panics: a present
// but broken config file is an operator error worth failing fast on.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SigningKeyFile != "" {
		config.SigningKeyFile = c.SigningKeyFile
	}
	if c.AccessTokenExpire != 0 {
		config.AccessTokenExpire = c.AccessTokenExpire.Std()
	}
	if c.RefreshTokenExpire != 0 {
		config.RefreshTokenExpire = c.RefreshTokenExpire.Std()
	}
	if c.MaxRefreshTokenLifeTime != 0 {
		config.MaxRefreshTokenLifeTime = c.MaxRefreshTokenLifeTime.Std()
	}
}
