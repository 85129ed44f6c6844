// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5report

import "time"

// SetNowFunc overrides the clock used for the expiry horizon in tests.
func (r *Reporter) SetNowFunc(now func() time.Time) { r.now = now }
