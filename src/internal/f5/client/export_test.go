// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5client

import "time"

// SetNowFunc overrides the clock used for session-age checks in tests.
func (c *Client) SetNowFunc(now func() time.Time) { c.now = now }

// Token returns the cached session token for test assertions.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
