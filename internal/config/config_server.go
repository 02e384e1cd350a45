package config

import "fmt"

// ServerConfig is the reference backend's view of [StructuredConfig].
type ServerConfig struct {
	Server  Server
	Storage Storage
}

// GetServerConfig builds and validates the backend configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}

	return serverCfg, serverCfg.validate()
}
