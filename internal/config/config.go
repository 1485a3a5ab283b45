// Package config reads the configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	// Storage
	DBPath          string
	CatalogSeedPath []string

	// Household
	PersonA string
	PersonB string

	// Import
	StatementPerson string // Person for credit card statements
	LinePerson      string // Person for plain text statements
	ImportWorkers   int

	// Logging
	LogFormat string
	LogLevel  string

	// Metrics are only written when a path is set
	MetricsTextfile string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first if it exists. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	personA := getEnv("PERSON_A", "Person A")
	personB := getEnv("PERSON_B", "Person B")

	return &Config{
		DBPath:          getEnv("LEDGER_DB_PATH", "data/ledger.db"),
		CatalogSeedPath: getEnvList("CATALOG_SEED_PATHS", []string{"./categories.csv", "./data/categories.csv"}),

		PersonA: personA,
		PersonB: personB,

		StatementPerson: getEnv("IMPORT_CSV_PERSON", personA),
		LinePerson:      getEnv("IMPORT_TXT_PERSON", personB),
		ImportWorkers:   getEnvInt("IMPORT_WORKERS", 4),

		LogFormat: getEnv("LOG_FORMAT", "human"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}
}

// Validate returns an error listing all problems of the configuration.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if len(c.CatalogSeedPath) == 0 {
		errors = append(errors, "at least one category seed path is required")
	}

	if strings.TrimSpace(c.PersonA) == "" || strings.TrimSpace(c.PersonB) == "" {
		errors = append(errors, "both persons of the household need a name")
	} else if c.PersonA == c.PersonB {
		errors = append(errors, fmt.Sprintf("persons of the household must differ, both are '%s'", c.PersonA))
	}

	if c.ImportWorkers < 1 || c.ImportWorkers > 16 {
		errors = append(errors, fmt.Sprintf("invalid import workers %d: must be between 1 and 16", c.ImportWorkers))
	}

	if c.LogFormat != "human" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be human or json", c.LogFormat))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty elements.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var list []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
