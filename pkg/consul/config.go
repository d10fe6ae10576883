package consul

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// Config represents client configuration for building a consul.Client.
//
// The client copies every field when it is constructed; later changes to
// the Config value have no effect on clients already built.
//
// # Defaults
//
// Token, Namespace and Datacenter are defaults applied to every request that
// does not override them in its QueryOptions. When Transport is nil, the
// client builds the default go-retryablehttp transport from TLS, HTTPTimeout,
// RetryMax, RetryWaitMin, RetryWaitMax, UserAgent and Debug. Those fields are
// ignored when a Transport is injected.
type Config struct {
	// Address is the agent base URI, e.g. "https://consul.service:8501". A
	// bare host:port is accepted and treated as http.
	Address string

	// Token is the default ACL token sent as X-Consul-Token.
	Token string
	// Namespace is the default namespace (Enterprise only).
	Namespace string
	// Datacenter is the default datacenter.
	Datacenter string

	// TLS configures the default transport. Nil uses system roots.
	TLS *TLSConfig

	// Transport replaces the default HTTP transport.
	Transport Transport
	// Logger receives request events. Defaults to NopLogger.
	Logger Logger
	// Metrics receives per-call measurements. Defaults to NopMetrics.
	Metrics Metrics

	// UserAgent is sent with every request by the default transport.
	UserAgent string
	// HTTPTimeout bounds a whole exchange. Zero means no timeout, which is
	// what blocking queries need.
	HTTPTimeout time.Duration
	// RetryMax is the number of socket-level retries on connection errors.
	// Zero disables retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Debug enables HTTP request/response logging in the default transport.
	Debug bool
}

// TLSConfig holds TLS material for the default transport. File paths and
// in-memory PEM blocks may be mixed; PEM takes precedence.
type TLSConfig struct {
	CACert     string
	ClientCert string
	ClientKey  string

	CAPEM         []byte
	ClientCertPEM []byte
	ClientKeyPEM  []byte

	// ServerName overrides the name used to verify the server certificate.
	ServerName string
	// InsecureSkipVerify disables certificate verification.
	InsecureSkipVerify bool
}

// DefaultConfig returns a configuration for a local agent, overridden by the
// standard CONSUL_* environment variables.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:      constants.DefaultAddress,
		RetryMax:     constants.DefaultRetryMax,
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
	}

	useTLS := envBool(constants.EnvHTTPSSL, false)

	if addr := os.Getenv(constants.EnvHTTPAddr); addr != "" {
		cfg.Address = addr
	}

	if useTLS {
		if _, rest, ok := strings.Cut(cfg.Address, "://"); ok {
			cfg.Address = "https://" + rest
		} else {
			cfg.Address = "https://" + cfg.Address
		}
	}

	cfg.Token = os.Getenv(constants.EnvHTTPToken)
	cfg.Namespace = os.Getenv(constants.EnvNamespace)
	cfg.Datacenter = os.Getenv(constants.EnvDatacenter)

	tlsCfg := &TLSConfig{
		CACert:             os.Getenv(constants.EnvCACert),
		ClientCert:         os.Getenv(constants.EnvClientCert),
		ClientKey:          os.Getenv(constants.EnvClientKey),
		ServerName:         os.Getenv(constants.EnvTLSServerName),
		InsecureSkipVerify: !envBool(constants.EnvHTTPSSLVerify, true),
	}

	if tlsCfg.CACert != "" || tlsCfg.ClientCert != "" || tlsCfg.ClientKey != "" ||
		tlsCfg.ServerName != "" || tlsCfg.InsecureSkipVerify {
		cfg.TLS = tlsCfg
	}

	return cfg
}

func envBool(name string, fallback bool) bool {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return parsed
}
