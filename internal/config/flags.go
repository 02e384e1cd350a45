package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args (without the program
// name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-profile startup endpoint profile (local|remote)
//	-api-url remote REST collection URL
//	-socket-url remote push channel URL
//	-request-timeout REST call timeout (e.g. "10s")
//	-fallback-delay delay of the re-list after a mutation (e.g. "300ms")
//	-reconnect-attempts push channel attempt budget
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var profile string
	var apiURL string
	var socketURL string
	var requestTimeout time.Duration
	var fallbackDelay time.Duration
	var reconnectAttempts int

	fs := flag.NewFlagSet("todo-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&profile, "profile", "", "Endpoint profile: local or remote")
	fs.StringVar(&apiURL, "api-url", "", "Remote REST collection URL")
	fs.StringVar(&socketURL, "socket-url", "", "Remote push channel URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.DurationVar(&fallbackDelay, "fallback-delay", 0, "Fallback re-list delay (e.g., 300ms)")
	fs.IntVar(&reconnectAttempts, "reconnect-attempts", 0, "Push channel reconnect attempts")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Client: Client{
			Profile: profile,
			Remote: Endpoints{
				APIURL:    apiURL,
				SocketURL: socketURL,
			},
			RequestTimeout:    requestTimeout,
			FallbackDelay:     fallbackDelay,
			ReconnectAttempts: reconnectAttempts,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
