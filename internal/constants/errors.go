package constants

import "errors"

// Configuration errors.
var (
	ErrNoAddressConfigured = errors.New("no Consul address configured, use --address or 'consulctl config set address <url>'")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrTokenNotProvided    = errors.New("no token provided")
)

// Argument errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidKeyValueFlag = errors.New("invalid key=value pair")
	ErrSnapshotFileEmpty   = errors.New("snapshot file is empty")
)
