package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Client struct {
		Profile string `json:"profile"`
		Local   struct {
			APIURL    string `json:"api_url"`
			SocketURL string `json:"socket_url"`
		} `json:"local,omitempty"`
		Remote struct {
			APIURL    string `json:"api_url"`
			SocketURL string `json:"socket_url"`
		} `json:"remote,omitempty"`
		RequestTimeout        Duration `json:"request_timeout"`
		FallbackDelay         Duration `json:"fallback_delay"`
		ReconnectAttempts     int      `json:"reconnect_attempts"`
		ReconnectInitialDelay Duration `json:"reconnect_initial_delay"`
		ReconnectMaxDelay     Duration `json:"reconnect_max_delay"`
	} `json:"client,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Client: Client{
			Profile: jsonCfg.Client.Profile,
			Local: Endpoints{
				APIURL:    jsonCfg.Client.Local.APIURL,
				SocketURL: jsonCfg.Client.Local.SocketURL,
			},
			Remote: Endpoints{
				APIURL:    jsonCfg.Client.Remote.APIURL,
				SocketURL: jsonCfg.Client.Remote.SocketURL,
			},
			RequestTimeout:        time.Duration(jsonCfg.Client.RequestTimeout),
			FallbackDelay:         time.Duration(jsonCfg.Client.FallbackDelay),
			ReconnectAttempts:     jsonCfg.Client.ReconnectAttempts,
			ReconnectInitialDelay: time.Duration(jsonCfg.Client.ReconnectInitialDelay),
			ReconnectMaxDelay:     time.Duration(jsonCfg.Client.ReconnectMaxDelay),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
