package config

import (
	"os"
	"time"
)

func Addr() string {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		return addr
	}
	return ":8080"
}

func Development() bool {
	dev, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return dev != "0"
}

// SessionTTL bounds how long an idle game stays in memory before the
// janitor drops it.
func SessionTTL() time.Duration {
	if ttl, ok := os.LookupEnv("APP_SESSION_TTL"); ok {
		if d, err := time.ParseDuration(ttl); err == nil {
			return d
		}
	}
	return time.Hour
}

func LogFilePath() string {
	if path, ok := os.LookupEnv("APP_LOG_FILE"); ok {
		return path
	}
	return "logs/minesweep.log"
}
