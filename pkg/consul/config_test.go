package consul

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "")
	t.Setenv("CONSUL_HTTP_TOKEN", "")
	t.Setenv("CONSUL_HTTP_SSL", "")
	t.Setenv("CONSUL_HTTP_SSL_VERIFY", "")
	t.Setenv("CONSUL_NAMESPACE", "")
	t.Setenv("CONSUL_DATACENTER", "")
	t.Setenv("CONSUL_CACERT", "")
	t.Setenv("CONSUL_CLIENT_CERT", "")
	t.Setenv("CONSUL_CLIENT_KEY", "")
	t.Setenv("CONSUL_TLS_SERVER_NAME", "")

	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8500", cfg.Address)
	assert.Empty(t, cfg.Token)
	assert.Nil(t, cfg.TLS)
	assert.Zero(t, cfg.RetryMax)
}

func TestDefaultConfig_Environment(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "consul.service:8501")
	t.Setenv("CONSUL_HTTP_TOKEN", "acl-token")
	t.Setenv("CONSUL_HTTP_SSL", "true")
	t.Setenv("CONSUL_HTTP_SSL_VERIFY", "false")
	t.Setenv("CONSUL_NAMESPACE", "team-a")
	t.Setenv("CONSUL_DATACENTER", "dc2")
	t.Setenv("CONSUL_CACERT", "/etc/consul/ca.pem")
	t.Setenv("CONSUL_CLIENT_CERT", "")
	t.Setenv("CONSUL_CLIENT_KEY", "")
	t.Setenv("CONSUL_TLS_SERVER_NAME", "server.dc2.consul")

	cfg := DefaultConfig()
	assert.Equal(t, "https://consul.service:8501", cfg.Address)
	assert.Equal(t, "acl-token", cfg.Token)
	assert.Equal(t, "team-a", cfg.Namespace)
	assert.Equal(t, "dc2", cfg.Datacenter)

	if assert.NotNil(t, cfg.TLS) {
		assert.Equal(t, "/etc/consul/ca.pem", cfg.TLS.CACert)
		assert.Equal(t, "server.dc2.consul", cfg.TLS.ServerName)
		assert.True(t, cfg.TLS.InsecureSkipVerify)
	}
}

func TestDefaultConfig_SSLUpgradesScheme(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "http://10.0.0.5:8501")
	t.Setenv("CONSUL_HTTP_SSL", "1")
	t.Setenv("CONSUL_HTTP_SSL_VERIFY", "")
	t.Setenv("CONSUL_CACERT", "")
	t.Setenv("CONSUL_CLIENT_CERT", "")
	t.Setenv("CONSUL_CLIENT_KEY", "")
	t.Setenv("CONSUL_TLS_SERVER_NAME", "")

	cfg := DefaultConfig()
	assert.Equal(t, "https://10.0.0.5:8501", cfg.Address)
	assert.Nil(t, cfg.TLS)
}
