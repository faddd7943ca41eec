package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read from the environment with
// defaults suitable for local development.
type Config struct {
	Addr           string
	AllowedOrigins []string

	MaxPlayersPerRoom int
	MaxRooms          int
	MaxHistoryItems   int
	EmptyRoomGrace    time.Duration

	// Card selection is chatty; host controls are not. They get separate
	// token buckets per connection.
	SelectRate   float64
	SelectBurst  int
	ControlRate  float64
	ControlBurst int

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:  getEnv("VIBEPOKER_ADDR", ":8080"),
		Debug: getEnv("DEBUG", "") == "true",
	}

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	var err error
	if cfg.MaxPlayersPerRoom, err = getEnvInt("MAX_PLAYERS_PER_ROOM", 50); err != nil {
		return nil, err
	}
	if cfg.MaxRooms, err = getEnvInt("MAX_ROOMS", 1000); err != nil {
		return nil, err
	}
	if cfg.MaxHistoryItems, err = getEnvInt("MAX_HISTORY_ITEMS", 50); err != nil {
		return nil, err
	}
	if cfg.EmptyRoomGrace, err = getEnvDuration("EMPTY_ROOM_GRACE", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SelectRate, err = getEnvFloat("SELECT_RATE", 10); err != nil {
		return nil, err
	}
	if cfg.SelectBurst, err = getEnvInt("SELECT_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.ControlRate, err = getEnvFloat("CONTROL_RATE", 2); err != nil {
		return nil, err
	}
	if cfg.ControlBurst, err = getEnvInt("CONTROL_BURST", 5); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
