package config

import "os"

// DatabaseConfig describes the optional MySQL upload ledger.  The ledger is
// disabled when DB_HOST is empty.
type DatabaseConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// LoadDatabaseConfig reads the DB_* variables.
func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		User: getenv("DB_USER", "root"),
		Pass: os.Getenv("DB_PASS"),
		Host: os.Getenv("DB_HOST"),
		Port: getenv("DB_PORT", "3306"),
		Name: getenv("DB_NAME", "booth_data"),
	}
}

// Enabled reports whether a database host was configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }
