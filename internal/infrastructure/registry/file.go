package registry

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// Amounts and durations travel as strings in the profile file so the parsing
// stays explicit (decimal and time.Duration both reject silently lossy forms).
type fileProfile struct {
	Method string `yaml:"method"`
	Fees   struct {
		Fixed   string `yaml:"fixed"`
		Percent string `yaml:"percent"`
		Extra   string `yaml:"extra"`
	} `yaml:"fees"`
	Speed struct {
		Nominal string `yaml:"nominal"`
		Min     string `yaml:"min"`
		Max     string `yaml:"max"`
	} `yaml:"speed"`
	Limits struct {
		Min     string `yaml:"min"`
		Max     string `yaml:"max"`
		Daily   string `yaml:"daily"`
		Monthly string `yaml:"monthly"`
	} `yaml:"limits"`
	Countries  []string `yaml:"countries"`
	Currencies []string `yaml:"currencies"`
}

type fileConfig struct {
	Methods []fileProfile `yaml:"methods"`
}

// LoadFile builds a registry from a YAML profile file.
func LoadFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}
	if len(cfg.Methods) == 0 {
		return nil, fmt.Errorf("registry file %s defines no methods", path)
	}

	profiles := make([]method.MethodProfile, 0, len(cfg.Methods))
	for _, fp := range cfg.Methods {
		if fp.Method == "" {
			return nil, fmt.Errorf("registry file %s: method identifier is required", path)
		}

		p := method.MethodProfile{
			Method:     method.Method(fp.Method),
			Countries:  fp.Countries,
			Currencies: fp.Currencies,
		}

		if p.Fees.Fixed, err = parseAmount(fp.Fees.Fixed); err != nil {
			return nil, fmt.Errorf("method %s fees.fixed: %w", fp.Method, err)
		}
		if p.Fees.Percent, err = parseAmount(fp.Fees.Percent); err != nil {
			return nil, fmt.Errorf("method %s fees.percent: %w", fp.Method, err)
		}
		if p.Fees.Extra, err = parseAmount(fp.Fees.Extra); err != nil {
			return nil, fmt.Errorf("method %s fees.extra: %w", fp.Method, err)
		}

		if p.Speed.Nominal, err = parseDuration(fp.Speed.Nominal); err != nil {
			return nil, fmt.Errorf("method %s speed.nominal: %w", fp.Method, err)
		}
		if p.Speed.Min, err = parseDuration(fp.Speed.Min); err != nil {
			return nil, fmt.Errorf("method %s speed.min: %w", fp.Method, err)
		}
		if p.Speed.Max, err = parseDuration(fp.Speed.Max); err != nil {
			return nil, fmt.Errorf("method %s speed.max: %w", fp.Method, err)
		}

		if p.Limits.Min, err = parseAmount(fp.Limits.Min); err != nil {
			return nil, fmt.Errorf("method %s limits.min: %w", fp.Method, err)
		}
		if p.Limits.Max, err = parseAmount(fp.Limits.Max); err != nil {
			return nil, fmt.Errorf("method %s limits.max: %w", fp.Method, err)
		}
		if p.Limits.Daily, err = parseAmount(fp.Limits.Daily); err != nil {
			return nil, fmt.Errorf("method %s limits.daily: %w", fp.Method, err)
		}
		if p.Limits.Monthly, err = parseAmount(fp.Limits.Monthly); err != nil {
			return nil, fmt.Errorf("method %s limits.monthly: %w", fp.Method, err)
		}

		profiles = append(profiles, p)
	}

	return NewStatic(profiles), nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
