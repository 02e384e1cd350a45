// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks invariants that hold for both the client and the server
// view. Role-specific checks live on [ClientConfig] and [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Client.Profile != "" && cfg.Client.Profile != ProfileLocal && cfg.Client.Profile != ProfileRemote {
		return fmt.Errorf("%w: unknown profile %q", ErrInvalidEndpointConfigs, cfg.Client.Profile)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	selected, err := cfg.EndpointFor(cfg.Profile)
	if err != nil {
		return err
	}
	if err = selected.validate(); err != nil {
		return err
	}

	if cfg.Remote.APIURL != "" {
		if err = cfg.Remote.validate(); err != nil {
			return err
		}
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Sync.FallbackDelay <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Push.MaxAttempts <= 0 || cfg.Push.InitialDelay <= 0 || cfg.Push.MaxDelay < cfg.Push.InitialDelay {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (e Endpoint) validate() error {
	for _, raw := range []string{e.APIURL, e.SocketURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: %q is not an absolute url", ErrInvalidEndpointConfigs, raw)
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
		default:
			return fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidEndpointConfigs, raw)
		}
	}
	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
