// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the BIG-IP
// expiring-certificate reporter. It implements a Cobra-based CLI with
// subcommands for the expiry report (table or JSON output), certificate and
// key upload/install, client-ssl profile management, virtual server, pool,
// and node listings, and remote shell execution. Connection settings come
// from flags, environment variables, or a JSON/YAML config file.
package cli
