package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env schema version the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the variables that must be set for a store driver
func RequiredEnvVars(driver string) []string {
	required := []string{EnvAPIKey}
	if driver != StoreDriverMemory {
		required = append(required, EnvDBUser, EnvDBPassword, EnvDBHost, EnvDBPort, EnvDBName)
	}
	return required
}

// ValidateEnv checks that the required variables for driver are set and
// that a declared schema version matches
func ValidateEnv(driver string) error {
	if v := os.Getenv(EnvSchemaVersion); v != "" && v != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated",
			ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars(driver) {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and returns warnings for
// non-critical issues like example values left in place
func ValidateEnvWithWarnings(driver string) ([]string, error) {
	if err := ValidateEnv(driver); err != nil {
		return nil, err
	}

	var warnings []string
	if driver != StoreDriverMemory && os.Getenv(EnvDBPassword) == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv(EnvAPIKey) == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if driver == StoreDriverMemory && os.Getenv(EnvEnvironment) == "prod" {
		warnings = append(warnings, "STORE_DRIVER=memory loses all decks on restart")
	}
	return warnings, nil
}
