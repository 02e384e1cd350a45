// Package config provides configuration loading, merging, and validation
// facilities for the to-do client and its reference backend.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file
//  3. Environment variables
//  4. Command-line flags
//
// The main entry points are [GetClientConfig] for the client and
// [GetServerConfig] for the backend. [Endpoint] is the value the client's
// synchronization controller is constructed with and reconfigured to.
package config
