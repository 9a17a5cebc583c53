// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database string
	LookupId string

	MinLearns       uint32
	MinTokenHits    uint32
	MinProbStrength float64

	CachePositive int
	CacheNegative int

	Loglevel *string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Database:        "bayes.db",
		LookupId:        "bayes",
		MinLearns:       200,
		MinTokenHits:    2,
		MinProbStrength: 0.05,
		CachePositive:   8192,
		CacheNegative:   32768,
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.LookupId, "LookupId must not be empty, set to the name scripts use to address the store"); err != nil {
		return err
	}

	if c.MinProbStrength < 0 || c.MinProbStrength >= 0.5 {
		return fmt.Errorf("MinProbStrength must be in [0, 0.5), got %v", c.MinProbStrength)
	}

	if c.CachePositive <= 0 || c.CacheNegative <= 0 {
		return fmt.Errorf("CachePositive and CacheNegative must be positive")
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
