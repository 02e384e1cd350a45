// Package server runs the reference backend's HTTP server.
//
// It owns startup, signal handling, and graceful shutdown of the listener.
package server
