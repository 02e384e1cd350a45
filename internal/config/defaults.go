// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Profile names accepted by [Client.Profile].
const (
	ProfileLocal  = "local"
	ProfileRemote = "remote"
)

const (
	defaultLocalAPIURL           = "http://localhost:3000/todos"
	defaultLocalSocketURL        = "http://localhost:3000"
	defaultRequestTimeout        = 10 * time.Second
	defaultFallbackDelay         = 300 * time.Millisecond
	defaultReconnectAttempts     = 10
	defaultReconnectInitialDelay = 1 * time.Second
	defaultReconnectMaxDelay     = 10 * time.Second

	defaultServerAddress        = "localhost:3000"
	defaultServerRequestTimeout = 30 * time.Second
	defaultDSN                  = "todos.db"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Client: Client{
			Profile: ProfileLocal,
			Local: Endpoints{
				APIURL:    defaultLocalAPIURL,
				SocketURL: defaultLocalSocketURL,
			},
			RequestTimeout:        defaultRequestTimeout,
			FallbackDelay:         defaultFallbackDelay,
			ReconnectAttempts:     defaultReconnectAttempts,
			ReconnectInitialDelay: defaultReconnectInitialDelay,
			ReconnectMaxDelay:     defaultReconnectMaxDelay,
		},
		Server: Server{
			HTTPAddress:    defaultServerAddress,
			RequestTimeout: defaultServerRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: defaultDSN},
		},
	}
}
