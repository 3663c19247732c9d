package config

import (
	"fmt"
	"os"
	"strconv"

	domainconfig "relgraph-backend/domain/config"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// CORS
	EnableCORS bool

	// Layout tuning overrides; zero values fall back to the domain
	// defaults.
	DefaultIterations  int
	RepulsionStrength  float64
	AttractionStrength float64
	GravityStrength    float64
	DampingFactor      float64
	MinNodeSpacing     float64
	BarnesHutThreshold int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		DefaultIterations:  getEnvInt("LAYOUT_ITERATIONS", 0),
		RepulsionStrength:  getEnvFloat("LAYOUT_REPULSION", 0),
		AttractionStrength: getEnvFloat("LAYOUT_ATTRACTION", 0),
		GravityStrength:    getEnvFloat("LAYOUT_GRAVITY", 0),
		DampingFactor:      getEnvFloat("LAYOUT_DAMPING", 0),
		MinNodeSpacing:     getEnvFloat("LAYOUT_MIN_SPACING", 0),
		BarnesHutThreshold: getEnvInt("LAYOUT_BH_THRESHOLD", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS cannot be empty")
	}
	if c.DefaultIterations < 0 {
		return fmt.Errorf("LAYOUT_ITERATIONS cannot be negative")
	}
	if c.DampingFactor < 0 || c.DampingFactor > 1 {
		return fmt.Errorf("LAYOUT_DAMPING must be in [0,1]")
	}
	return nil
}

// DomainConfig materializes the layout domain configuration with any
// environment overrides applied on top of the defaults.
func (c *Config) DomainConfig() *domainconfig.DomainConfig {
	dc := domainconfig.DefaultDomainConfig()
	if c.DefaultIterations > 0 {
		dc.DefaultIterations = c.DefaultIterations
	}
	if c.RepulsionStrength > 0 {
		dc.RepulsionStrength = c.RepulsionStrength
	}
	if c.AttractionStrength > 0 {
		dc.AttractionStrength = c.AttractionStrength
	}
	if c.GravityStrength > 0 {
		dc.GravityStrength = c.GravityStrength
	}
	if c.DampingFactor > 0 {
		dc.DampingFactor = c.DampingFactor
	}
	if c.MinNodeSpacing > 0 {
		dc.MinNodeSpacing = c.MinNodeSpacing
	}
	if c.BarnesHutThreshold > 0 {
		dc.BarnesHutThreshold = c.BarnesHutThreshold
	}
	return dc
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
