// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package f5client implements an authenticated HTTP session client for the
// F5 BIG-IP [iControl REST] management API. It acquires a session token via
// the tmos login provider, attaches it to every call through the
// X-F5-Auth-Token header, and transparently re-authenticates when the cached
// session is older than the 18-minute safety margin (tokens are hard-limited
// to 20 minutes upstream).
//
// Failures map onto three error types: AuthenticationError for HTTP 401,
// TransportError for any other network, TLS, non-2xx, or decoding failure,
// and ConfigurationError for invalid settings detected before any network
// call.
//
// [iControl REST]: https://clouddocs.f5.com/api/icontrol-rest/
package f5client
