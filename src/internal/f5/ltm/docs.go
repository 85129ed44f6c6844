// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package f5ltm provides typed access to BIG-IP LTM configuration objects:
// SSL certificate files, client-ssl profiles, virtual servers, pools, and
// nodes, plus the write-side plumbing (bulk file upload, crypto key and
// certificate install, profile create/update, util/bash execution).
//
// Object identities are partition-qualified ObjectID values; all
// cross-entity matching elsewhere in the application is done by exact
// equality of their "/partition/name" paths. Collections are read-only
// snapshots fetched fresh per call. Deep-mode virtual-server fetches fan out
// one extra request per virtual through a bounded worker pool.
package f5ltm
