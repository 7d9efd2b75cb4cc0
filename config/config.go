package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"depin-monitor/geo"
	"depin-monitor/health"
)

type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level      string `mapstructure:"level"`
		AppLogFile string `mapstructure:"app_log_file"`
	} `mapstructure:"log"`
	Health struct {
		Thresholds health.Thresholds `mapstructure:"thresholds"`
	} `mapstructure:"health"`
	Dashboard struct {
		NearbyLimit int     `mapstructure:"nearby_limit"`
		USDRate     float64 `mapstructure:"usd_rate"`
	} `mapstructure:"dashboard"`
	Map struct {
		DefaultCenter geo.GeoPoint `mapstructure:"default_center"`
	} `mapstructure:"map"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.app_log_file", "")
	v.SetDefault("health.thresholds.excellent", health.DefaultThresholds.Excellent)
	v.SetDefault("health.thresholds.good", health.DefaultThresholds.Good)
	v.SetDefault("health.thresholds.poor", health.DefaultThresholds.Poor)
	v.SetDefault("dashboard.nearby_limit", 5)
	v.SetDefault("dashboard.usd_rate", 45.2)
	v.SetDefault("map.default_center.latitude", 37.7749)
	v.SetDefault("map.default_center.longitude", -122.4194)
}

// Load reads the YAML file at path, then applies DEPIN_* environment
// overrides (e.g. DEPIN_SERVER_PORT). An empty path uses defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DEPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Dashboard.NearbyLimit <= 0 {
		return errors.New("dashboard.nearby_limit must be positive")
	}
	if c.Dashboard.USDRate <= 0 {
		return errors.New("dashboard.usd_rate must be positive")
	}
	if err := c.Health.Thresholds.Validate(); err != nil {
		return err
	}
	if err := geo.ValidatePoint(c.Map.DefaultCenter); err != nil {
		return fmt.Errorf("map.default_center: %w", err)
	}
	return nil
}
