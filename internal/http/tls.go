package http

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Static errors for err113 compliance.
var (
	ErrInvalidCACert        = errors.New("no certificates found in CA bundle")
	ErrIncompleteClientCert = errors.New("client certificate and key must be provided together")
)

// NewTLSConfig builds a *tls.Config from consul.TLSConfig. It returns nil
// when cfg is nil.
func NewTLSConfig(cfg *consul.TLSConfig) (*tls.Config, error) {
	if cfg == nil {
		return nil, nil //nolint:nilnil // nil means system defaults
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         cfg.ServerName,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in via CONSUL_HTTP_SSL_VERIFY=false
	}

	caPEM, err := pemOrFile(cfg.CAPEM, cfg.CACert)
	if err != nil {
		return nil, fmt.Errorf("reading CA certificate: %w", err)
	}

	if len(caPEM) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, ErrInvalidCACert
		}

		tlsConfig.RootCAs = pool
	}

	certPEM, err := pemOrFile(cfg.ClientCertPEM, cfg.ClientCert)
	if err != nil {
		return nil, fmt.Errorf("reading client certificate: %w", err)
	}

	keyPEM, err := pemOrFile(cfg.ClientKeyPEM, cfg.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("reading client key: %w", err)
	}

	switch {
	case len(certPEM) > 0 && len(keyPEM) > 0:
		cert, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	case len(certPEM) > 0 || len(keyPEM) > 0:
		return nil, ErrIncompleteClientCert
	}

	return tlsConfig, nil
}

func pemOrFile(pem []byte, path string) ([]byte, error) {
	if len(pem) > 0 {
		return pem, nil
	}

	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, err
	}

	return data, nil
}
