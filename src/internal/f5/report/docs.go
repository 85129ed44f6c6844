// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package f5report computes the expiring-certificate cross-reference report:
// for every SSL certificate on the appliance expiring within a configurable
// horizon (or already expired), it correlates the client-ssl profiles
// referencing the certificate and, in deep mode, the virtual servers
// referencing those profiles.
//
// Matching is exact, case-sensitive equality of partition-qualified
// "/partition/name" identities. The report is a pure transformation over
// fresh read-only snapshots; any fetch failure aborts the computation with
// no partial results.
package f5report
