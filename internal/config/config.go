package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type LotConfig struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

// Layout is the YAML form of a facility, read from LOTS_FILE.
type Layout struct {
	Attendant string      `yaml:"attendant"`
	Lots      []LotConfig `yaml:"lots"`
}

type Config struct {
	Mode        string
	Port        string
	Environment string

	AttendantID string
	Lots        []LotConfig

	OTelServiceName string
	OTelEndpoint    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Mode:            getEnv("MODE", "cli"),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		AttendantID:     getEnv("ATTENDANT_ID", "EL0315"),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "parking-attendant"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	lots, err := parseCapacities(getEnv("LOT_CAPACITIES", "5,8,10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOT_CAPACITIES: %w", err)
	}
	cfg.Lots = lots

	if path := os.Getenv("LOTS_FILE"); path != "" {
		layout, err := LoadLayout(path)
		if err != nil {
			return nil, err
		}
		cfg.Lots = layout.Lots
		if layout.Attendant != "" {
			cfg.AttendantID = layout.Attendant
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lots file %s: %w", path, err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse lots file %s: %w", path, err)
	}
	return &layout, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case "cli", "server", "both":
	default:
		return fmt.Errorf("invalid MODE %q: must be cli, server, or both", c.Mode)
	}
	if len(c.Lots) == 0 {
		return fmt.Errorf("at least one parking lot is required")
	}
	for i, lot := range c.Lots {
		if lot.Capacity <= 0 {
			return fmt.Errorf("lot %d: capacity must be greater than 0", i)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func parseCapacities(value string) ([]LotConfig, error) {
	var lots []LotConfig
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		capacity, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		lots = append(lots, LotConfig{
			Name:     fmt.Sprintf("lot-%d", len(lots)+1),
			Capacity: capacity,
		})
	}
	return lots, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
