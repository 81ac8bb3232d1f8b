package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func loadDatabasePassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}
	path, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// DatabaseURL builds a connection URL from DATABASE_URL, or from the
// individual POSTGRES_* variables when it is unset.
func DatabaseURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}

	username, ok := os.LookupEnv("POSTGRES_USER")
	if !ok {
		return "", fmt.Errorf("no DATABASE_URL or POSTGRES_USER env variable set")
	}
	password, err := loadDatabasePassword()
	if err != nil {
		return "", err
	}
	host, ok := os.LookupEnv("POSTGRES_HOST")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_HOST env variable set")
	}
	port, ok := os.LookupEnv("POSTGRES_PORT")
	if !ok {
		port = "5432"
	}
	dbName, ok := os.LookupEnv("POSTGRES_DB")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_DB env variable set")
	}
	sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE")
	if !ok {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		username, url.QueryEscape(password), host, port, dbName, sslMode,
	), nil
}
