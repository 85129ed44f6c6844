// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized by [Load]. Credentials set in the
// environment always take precedence over file values, so config files can
// be committed without secrets.
const (
	EnvConfigFile = "BIGIP_CONFIG_FILE"
	EnvHost       = "BIGIP_HOST"
	EnvUsername   = "BIGIP_USERNAME"
	EnvPassword   = "BIGIP_PASSWORD"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds connection settings for a BIG-IP appliance and defaults for
// the expiring-certificate report.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// BIGIP_CONFIG_FILE environment variable, with defaults applied for any
// missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Connection: How to reach and authenticate against the appliance
	Connection struct {
		// Host: Appliance management address; a bare host gets an https:// scheme
		Host string `json:"host" yaml:"host"`
		// Username: iControl REST account name (can also be set via BIGIP_USERNAME)
		Username string `json:"username,omitempty" yaml:"username,omitempty"`
		// Password: iControl REST account password (can also be set via BIGIP_PASSWORD)
		Password string `json:"password,omitempty" yaml:"password,omitempty"`
		// InsecureSkipVerify: Skip TLS verification of the management endpoint,
		// which commonly serves a self-signed certificate
		InsecureSkipVerify bool `json:"insecureSkipVerify" yaml:"insecureSkipVerify"`
		// Timeout: Per-request timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"connection" yaml:"connection"`

	// Report: Default settings for the expiring-certificate report
	Report struct {
		// ExpiresInDays: Look-ahead horizon for the expiry filter
		ExpiresInDays int `json:"expiresInDays" yaml:"expiresInDays"`
		// FetchVirtuals: Correlate virtual servers with matched profiles
		FetchVirtuals bool `json:"fetchVirtuals" yaml:"fetchVirtuals"`
		// Concurrency: Worker bound for per-virtual profile fetches
		Concurrency int `json:"concurrency" yaml:"concurrency"`
	} `json:"report" yaml:"report"`
}

// jsonSchema validates the shape of JSON config files before unmarshaling,
// turning typos like a string timeout into a clear error instead of a silent
// zero value.
const jsonSchema = `{
	"type": "object",
	"properties": {
		"connection": {
			"type": "object",
			"properties": {
				"host": {"type": "string"},
				"username": {"type": "string"},
				"password": {"type": "string"},
				"insecureSkipVerify": {"type": "boolean"},
				"timeoutSeconds": {"type": "integer"}
			},
			"additionalProperties": false
		},
		"report": {
			"type": "object",
			"properties": {
				"expiresInDays": {"type": "integer"},
				"fetchVirtuals": {"type": "boolean"},
				"concurrency": {"type": "integer"}
			},
			"additionalProperties": false
		}
	},
	"additionalProperties": false
}`

// detectConfigFormat determines the configuration file format based on file
// extension, matching case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// validateJSON checks JSON config data against the embedded schema.
func validateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jsonSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid config file: %s", strings.Join(details, "; "))
	}
	return nil
}

// unmarshalConfig unmarshals configuration data based on the specified
// format. JSON data is schema-validated first.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := validateJSON(data); err != nil {
			return err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads configuration from a JSON or YAML file or applies defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. BIGIP_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Environment variables override config file values
//     (BIGIP_HOST, BIGIP_USERNAME, BIGIP_PASSWORD)
//
// The file format is detected from the extension (.json, .yaml, or .yml).
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Connection.Timeout = 30
	config.Report.ExpiresInDays = 30
	config.Report.FetchVirtuals = true
	config.Report.Concurrency = 8

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Connection.Timeout <= 0 {
			config.Connection.Timeout = 30
		}
		if config.Report.Concurrency <= 0 {
			config.Report.Concurrency = 8
		}
	}

	// Environment credentials take precedence over file values
	if host := os.Getenv(EnvHost); host != "" {
		config.Connection.Host = host
	}
	if user := os.Getenv(EnvUsername); user != "" {
		config.Connection.Username = user
	}
	if pass := os.Getenv(EnvPassword); pass != "" {
		config.Connection.Password = pass
	}

	return config, nil
}

// ClientConfig translates the connection section into the session client's
// configuration.
func (c *Config) ClientConfig() f5client.Config {
	return f5client.Config{
		Host:               c.Connection.Host,
		Username:           c.Connection.Username,
		Password:           c.Connection.Password,
		InsecureSkipVerify: c.Connection.InsecureSkipVerify,
		Timeout:            time.Duration(c.Connection.Timeout) * time.Second,
	}
}
