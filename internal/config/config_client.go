package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Endpoint is the explicit "current configuration" the synchronization
// controller is built with and switched through. APIURL and SocketURL always
// point at the same logical host.
type Endpoint struct {
	// Name is a human-readable label, e.g. the profile name.
	Name string
	// APIURL is the REST collection URL.
	APIURL string
	// SocketURL is the push channel base URL.
	SocketURL string
}

// ClientAdapter holds settings of the REST transport.
type ClientAdapter struct {
	// RequestTimeout bounds every outbound REST call.
	RequestTimeout time.Duration
}

// ClientSync holds reconciliation timings.
type ClientSync struct {
	// FallbackDelay is the delay between a successful mutation and the
	// fallback re-list.
	FallbackDelay time.Duration
}

// ClientPush holds push channel reconnect settings.
type ClientPush struct {
	// MaxAttempts is the consecutive failure budget before giving up.
	MaxAttempts int
	// InitialDelay is the first backoff delay.
	InitialDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// ClientConfig is the client-side view of [StructuredConfig].
type ClientConfig struct {
	// Profile is the endpoint selected at startup.
	Profile string
	// Local and Remote are the two selectable endpoints. Remote may be empty
	// when the user never supplied one.
	Local  Endpoint
	Remote Endpoint

	Adapter ClientAdapter
	Sync    ClientSync
	Push    ClientPush
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Profile: strings.ToLower(strings.TrimSpace(cfg.Client.Profile)),
		Local:   newEndpoint(ProfileLocal, cfg.Client.Local),
		Remote:  newEndpoint(ProfileRemote, cfg.Client.Remote),
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Sync: ClientSync{
			FallbackDelay: cfg.Client.FallbackDelay,
		},
		Push: ClientPush{
			MaxAttempts:  cfg.Client.ReconnectAttempts,
			InitialDelay: cfg.Client.ReconnectInitialDelay,
			MaxDelay:     cfg.Client.ReconnectMaxDelay,
		},
	}
}

func newEndpoint(name string, e Endpoints) Endpoint {
	apiURL := strings.TrimRight(strings.TrimSpace(e.APIURL), "/")
	socketURL := strings.TrimRight(strings.TrimSpace(e.SocketURL), "/")
	if socketURL == "" && apiURL != "" {
		socketURL = DeriveSocketURL(apiURL)
	}

	return Endpoint{Name: name, APIURL: apiURL, SocketURL: socketURL}
}

// Endpoint returns the endpoint selected by Profile.
func (c *ClientConfig) Endpoint() Endpoint {
	e, _ := c.EndpointFor(c.Profile)
	return e
}

// EndpointFor returns the endpoint of the named profile. It fails with
// [ErrInvalidEndpointConfigs] for unknown profiles and for profiles that have
// no API URL configured.
func (c *ClientConfig) EndpointFor(profile string) (Endpoint, error) {
	var e Endpoint
	switch profile {
	case ProfileLocal:
		e = c.Local
	case ProfileRemote:
		e = c.Remote
	default:
		return Endpoint{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidEndpointConfigs, profile)
	}

	if e.APIURL == "" {
		return Endpoint{}, fmt.Errorf("%w: profile %q has no api url", ErrInvalidEndpointConfigs, profile)
	}
	return e, nil
}

// CustomEndpoint builds a named endpoint from an arbitrary user-supplied API
// URL, deriving the push channel URL from the same host.
func CustomEndpoint(apiURL string) (Endpoint, error) {
	e := newEndpoint(ProfileRemote, Endpoints{APIURL: apiURL})
	if err := e.validate(); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}

// DeriveSocketURL returns the scheme and host of apiURL, which is where the
// push channel lives when it is not configured explicitly.
func DeriveSocketURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
