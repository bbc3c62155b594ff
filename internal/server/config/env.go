package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAddr           = "BLOG_ADDR"
	EnvGRPCAddr       = "BLOG_GRPC_ADDR"
	EnvDatabaseDSN    = "BLOG_DATABASE_DSN"
	EnvSecretKey      = "BLOG_SECRET_KEY"
	EnvTokenTTL       = "BLOG_TOKEN_TTL"
	EnvPasswordHasher = "BLOG_PASSWORD_HASHER"
	EnvLogLevel       = "BLOG_LOG_LEVEL"
	EnvCORSOrigins    = "BLOG_CORS_ORIGINS"
)

var lookupEnv = os.LookupEnv

// loadDotEnv copies variables from path into the process environment without
// overriding ones that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// parseEnv overlays the BLOG_* variables that are present onto config.
// BLOG_TOKEN_TTL takes a Go duration ("30m"); BLOG_CORS_ORIGINS is a comma
// separated list.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup(EnvGRPCAddr); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup(EnvSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := lookup(EnvTokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := lookup(EnvPasswordHasher); ok {
		config.PasswordHasher = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		config.LogLevel = v
	}
	if v, ok := lookup(EnvCORSOrigins); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	return nil
}
