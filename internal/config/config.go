// Package config layers command flags, GPAREPORT_* environment variables
// and an optional YAML file into one configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/gpareport/internal/grades"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GPAREPORT"

// Config holds the settings shared by the report and serve commands.
type Config struct {
	Profile       string
	Format        string
	Out           string
	CreditPolicy  string
	SemesterOrder string
	Addr          string
	MaxBodyBytes  int64
	Verbose       bool
}

// Load resolves the configuration. Precedence is flag, environment, config
// file, then default. flags and configFile may be empty.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("profile", "general")
	v.SetDefault("format", "json")
	v.SetDefault("credit-policy", string(grades.CreditPolicyAll))
	v.SetDefault("semester-order", string(grades.SemesterOrderFirstSeen))
	v.SetDefault("addr", ":8080")
	v.SetDefault("max-body-bytes", int64(10<<20))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config.Load: bind flags: %w", err)
		}
	}

	cfg := &Config{
		Profile:       v.GetString("profile"),
		Format:        strings.ToLower(v.GetString("format")),
		Out:           v.GetString("out"),
		CreditPolicy:  v.GetString("credit-policy"),
		SemesterOrder: v.GetString("semester-order"),
		Addr:          v.GetString("addr"),
		MaxBodyBytes:  v.GetInt64("max-body-bytes"),
		Verbose:       v.GetBool("verbose"),
	}
	return cfg, nil
}

// Options converts the policy settings into engine options.
func (c *Config) Options() (grades.Options, error) {
	policy, ok := grades.ParseCreditPolicy(c.CreditPolicy)
	if !ok {
		return grades.Options{}, fmt.Errorf("unknown credit policy %q (want all or graded)", c.CreditPolicy)
	}
	order, ok := grades.ParseSemesterOrder(c.SemesterOrder)
	if !ok {
		return grades.Options{}, fmt.Errorf("unknown semester order %q (want first-seen or natural)", c.SemesterOrder)
	}
	return grades.Options{CreditPolicy: policy, SemesterOrder: order}, nil
}

// Validate checks the settings that have a fixed set of values.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	switch c.Format {
	case "json", "md":
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max-body-bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
