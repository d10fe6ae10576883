package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Agent address defaults.
const (
	// DefaultAddress is the address of a local Consul agent.
	DefaultAddress = "http://127.0.0.1:8500"

	// DefaultScheme is prepended to addresses given as host:port.
	DefaultScheme = "http"

	// APIPrefix is the versioned path prefix of every endpoint.
	APIPrefix = "/v1/"

	// DefaultUserAgent is sent by the default transport.
	DefaultUserAgent = "consul-client-go"
)

// Environment variables understood by DefaultConfig.
const (
	EnvHTTPAddr      = "CONSUL_HTTP_ADDR"
	EnvHTTPToken     = "CONSUL_HTTP_TOKEN"
	EnvHTTPSSL       = "CONSUL_HTTP_SSL"
	EnvHTTPSSLVerify = "CONSUL_HTTP_SSL_VERIFY"
	EnvNamespace     = "CONSUL_NAMESPACE"
	EnvDatacenter    = "CONSUL_DATACENTER"
	EnvCACert        = "CONSUL_CACERT"
	EnvClientCert    = "CONSUL_CLIENT_CERT"
	EnvClientKey     = "CONSUL_CLIENT_KEY"
	EnvTLSServerName = "CONSUL_TLS_SERVER_NAME"
)

// Protocol headers.
const (
	// HeaderIndex carries the consistency index used by blocking queries.
	HeaderIndex = "X-Consul-Index"

	// HeaderLastContact is the time in milliseconds since the server last
	// heard from the leader.
	HeaderLastContact = "X-Consul-LastContact"

	// HeaderKnownLeader reports whether the cluster currently has a leader.
	HeaderKnownLeader = "X-Consul-KnownLeader"

	// HeaderToken carries the ACL token.
	HeaderToken = "X-Consul-Token"

	// HeaderContentType is the request content type header.
	HeaderContentType = "Content-Type"

	// HeaderUserAgent is the request user agent header.
	HeaderUserAgent = "User-Agent"
)

// Content types.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// Query parameter names.
const (
	QueryDatacenter = "dc"
	QueryNamespace  = "ns"
	QueryStale      = "stale"
	QueryConsistent = "consistent"
	QueryIndex      = "index"
	QueryWait       = "wait"
	QueryFilter     = "filter"
	QueryNear       = "near"
	QueryNodeMeta   = "node-meta"
	QueryCached     = "cached"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the timeout used by CLI commands that do not block.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits for the default transport. Retries only apply to
// connection-level failures and are disabled unless RetryMax > 0.
const (
	// DefaultRetryMax is the default maximum number of socket-level retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Blocking query and watch defaults.
const (
	// DefaultWatchWait is the wait requested by each blocking call of a watch.
	DefaultWatchWait = 5 * time.Minute

	// MaxBlockingWait is the upper bound Consul applies to wait.
	MaxBlockingWait = 10 * time.Minute

	// ExponentialBackoffBase is the base for exponential backoff.
	ExponentialBackoffBase = 2
)

// BooleanTrue is the value sent for presence-only query flags.
const BooleanTrue = "true"

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
