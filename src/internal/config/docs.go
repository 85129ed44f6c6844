// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads appliance connection settings and report defaults
// from JSON or YAML files, with environment-variable overrides for
// credentials. JSON configs are schema-validated before unmarshaling.
package config
