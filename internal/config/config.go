package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds the preview server's runtime configuration.  Each field
// corresponds to an environment variable.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	DataDir   string // root of the local event tree (default "data")
	JWTSecret string // secret used to sign and verify admin tokens
}

// Load reads the server configuration.  Required variables are enforced by
// must() and missing values cause the program to exit with a fatal log
// message.
func Load() Config {
	return Config{
		Env:       getenv("APP_ENV", "dev"),
		Port:      must("APP_PORT"),
		DataDir:   getenv("DATA_DIR", "data"),
		JWTSecret: must("JWT_SECRET"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// AccessTokenTTL is ACCESS_TOKEN_TTL_MIN, 60 when unset.  It does not need
// APP_PORT, unlike Load.
func AccessTokenTTL() int { return envInt("ACCESS_TOKEN_TTL_MIN", 60) }
