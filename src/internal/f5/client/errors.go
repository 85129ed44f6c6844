// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5client

import "fmt"

// AuthenticationError indicates that the BIG-IP rejected the credentials or
// the session token (HTTP 401). It is fatal for the current operation and is
// never retried with different credentials.
type AuthenticationError struct {
	// Op names the phase that failed, e.g. "login" or "GET /mgmt/tm/ltm/virtual".
	Op  string
	Err error
}

// Error returns the error message identifying the failing phase.
func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("f5client: authentication failed during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("f5client: authentication failed during %s", e.Op)
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError indicates a network, TLS, non-2xx (other than 401), or
// malformed-response failure. It is fatal for the current operation.
type TransportError struct {
	// Op names the phase that failed, e.g. "GET /mgmt/tm/sys/file/ssl-cert".
	Op string
	// StatusCode is the HTTP status code, or zero when the call never
	// produced a response.
	StatusCode int
	Err        error
}

// Error returns the error message identifying the failing phase and, when
// available, the HTTP status.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("f5client: %s returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("f5client: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// ConfigurationError indicates missing or invalid client configuration.
// It is raised before any network call is made.
type ConfigurationError struct {
	// Field names the offending configuration field.
	Field string
	// Reason describes why the value was rejected.
	Reason string
}

// Error returns the error message naming the offending field.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("f5client: invalid configuration: %s %s", e.Field, e.Reason)
}
