// Package config provides configuration file parsing.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/spf13/viper"
)

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.WakeConfig, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a reader (useful for testing).
func (p *Parser) LoadReader(content string) (*models.WakeConfig, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

func (p *Parser) parse() (*models.WakeConfig, error) {
	cfg := &models.WakeConfig{
		Host:        p.expandEnv(p.v.GetString("host")),
		PreferIPv6:  p.v.GetBool("ipv6"),
		Wait:        p.v.GetDuration("wait"),
		File:        p.expandEnv(p.v.GetString("file")),
		MetricsFile: p.expandEnv(p.v.GetString("metrics_file")),
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost(cfg.PreferIPv6)
	}

	cfg.Port = models.DefaultPort
	if p.v.IsSet("port") {
		port := p.v.GetInt("port")
		if port <= 0 || port > math.MaxUint16 {
			return nil, fmt.Errorf("port must be between 1 and %d, got %d", math.MaxUint16, port)
		}
		cfg.Port = uint16(port)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsSet reports whether the loaded file sets key explicitly.
func (p *Parser) IsSet(key string) bool {
	return p.v.IsSet(key)
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// DefaultHost returns the destination used when none is configured.
func DefaultHost(preferIPv6 bool) string {
	if preferIPv6 {
		return models.DefaultHostIPv6
	}
	return models.DefaultHost
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.WakeConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Host == "" {
		return fmt.Errorf("host is required")
	}

	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}

	if cfg.Wait < 0 {
		return fmt.Errorf("wait must not be negative, got %s", cfg.Wait)
	}

	return nil
}
