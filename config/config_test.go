package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv(EnvDIDResolverURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvHTTPTimeout, "")
	t.Setenv(EnvDBPath, "")

	assert.Equal(t, DefaultDIDResolverURL, DIDResolverURL())
	assert.Equal(t, DefaultLogLevel, LogLevel())
	assert.Equal(t, DefaultHTTPTimeout, HTTPTimeout())
	assert.Equal(t, DefaultDBPath, DBPath())
}

func TestEnvironment(t *testing.T) {
	t.Setenv(EnvDIDResolverURL, "https://resolver.example/1.0/identifiers")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvHTTPTimeout, "3s")
	t.Setenv(EnvDBPath, "/var/lib/ldproof/records.db")

	assert.Equal(t, "https://resolver.example/1.0/identifiers", DIDResolverURL())
	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, 3*time.Second, HTTPTimeout())
	assert.Equal(t, "/var/lib/ldproof/records.db", DBPath())
}

func TestInvalidHTTPTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0"} {
		t.Setenv(EnvHTTPTimeout, v)
		assert.Equal(t, DefaultHTTPTimeout, HTTPTimeout(), v)
	}
}
