// Package config reads process configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/containerd/log"
)

// Default values
const (
	DefaultDIDResolverURL = ""
	DefaultLogLevel       = "info"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultDBPath         = "ldproof.db"
)

// Environment variable names
const (
	EnvDIDResolverURL = "LDPROOF_DID_RESOLVER_URL"
	EnvLogLevel       = "LDPROOF_LOG_LEVEL"
	EnvHTTPTimeout    = "LDPROOF_HTTP_TIMEOUT"
	EnvDBPath         = "LDPROOF_DB_PATH"
)

// DIDResolverURL returns the base URL of the DID resolver, or "" when DIDs
// other than did:key are not resolved.
func DIDResolverURL() string {
	if url := os.Getenv(EnvDIDResolverURL); url != "" {
		return url
	}
	return DefaultDIDResolverURL
}

// LogLevel returns the log level from environment variable or default value
func LogLevel() string {
	if level := os.Getenv(EnvLogLevel); level != "" {
		return level
	}
	return DefaultLogLevel
}

// HTTPTimeout returns the timeout of outgoing HTTP requests. The variable
// takes a Go duration such as "5s".
func HTTPTimeout() time.Duration {
	if s := os.Getenv(EnvHTTPTimeout); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
		log.L.WithField("value", s).Warnf("invalid %s, using %s", EnvHTTPTimeout, DefaultHTTPTimeout)
	}
	return DefaultHTTPTimeout
}

// DBPath returns the path of the record database from environment variable or default value
func DBPath() string {
	if path := os.Getenv(EnvDBPath); path != "" {
		return path
	}
	return DefaultDBPath
}
