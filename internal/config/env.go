package config

import (
	"os"
	"strconv"
	"time"
)

// Lookups below keep the current value when the variable is unset, empty or
// does not parse.

func envString(key, current string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return current
}

func envInt(key string, current int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return current
	}
	return n
}

func envInt64(key string, current int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return current
	}
	return n
}

func envDuration(key string, current time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return current
	}
	return d
}
