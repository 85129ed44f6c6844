// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5report

import (
	"context"
	"sync"
	"time"

	f5ltm "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/ltm"
)

// Fetcher supplies the three LTM collections the report correlates.
// *f5ltm.Service satisfies it; tests substitute fixtures.
type Fetcher interface {
	Certificates(ctx context.Context) ([]f5ltm.Certificate, error)
	ClientSSLProfiles(ctx context.Context) ([]f5ltm.ClientSSLProfile, error)
	VirtualServers(ctx context.Context, deep bool) ([]f5ltm.VirtualServer, error)
}

// VirtualRef identifies a virtual server referencing a matched profile.
type VirtualRef struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// Row is one output record of the expiry report.
//
// Cardinality: a certificate with N matching profiles produces N rows; a
// certificate with no matching profile produces exactly one row with a nil
// Profile. Virtuals is nil both when virtual matching was skipped and when a
// matched profile is referenced by zero virtuals — callers cannot
// distinguish "not checked" from "checked, zero virtuals", mirroring the
// appliance tooling this report originated from.
type Row struct {
	Certificate    f5ltm.ObjectID  `json:"certificateId"`
	Partition      string          `json:"partition"`
	Profile        *f5ltm.ObjectID `json:"profileId,omitempty"`
	Expiration     time.Time       `json:"expiration"`
	Subject        string          `json:"subject"`
	SubjectAltName string          `json:"subjectAlternativeName,omitempty"`
	Virtuals       []VirtualRef    `json:"virtuals,omitempty"`
}

// Options controls the report computation.
type Options struct {
	// ExpiresInDays is the look-ahead horizon. The filter is one-sided:
	// certificates expiring strictly before now+ExpiresInDays are included,
	// so already-expired certificates always appear regardless of the value
	// (including zero or negative).
	ExpiresInDays int
	// FetchVirtuals enables deep mode: per-virtual profile references are
	// fetched and matched profiles are annotated with the virtuals using them.
	FetchVirtuals bool
}

// DefaultOptions returns the standard report settings: a 30-day horizon with
// virtual-server correlation enabled.
func DefaultOptions() Options {
	return Options{ExpiresInDays: 30, FetchVirtuals: true}
}

// Reporter computes the expiring-certificate cross-reference report.
type Reporter struct {
	fetcher Fetcher

	// now is the clock used for the expiry horizon; overridable in tests.
	now func() time.Time
}

// NewReporter creates a Reporter over the given fetcher.
func NewReporter(fetcher Fetcher) *Reporter {
	return &Reporter{fetcher: fetcher, now: time.Now}
}

// GetExpiringOrExpiredCertificates fetches certificates, client-ssl
// profiles, and virtual servers, then correlates them: every certificate
// expiring before now+ExpiresInDays is reported together with the profiles
// referencing it and, in deep mode, the virtual servers referencing those
// profiles.
//
// The three top-level fetches are mutually independent and are issued
// concurrently; the first failure aborts the whole computation with no
// partial results. Entities are fresh snapshots; nothing is cached across
// calls, so an unchanged upstream dataset yields an identical row set.
func (r *Reporter) GetExpiringOrExpiredCertificates(ctx context.Context, opts Options) ([]Row, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		certs    []f5ltm.Certificate
		profiles []f5ltm.ClientSSLProfile
		virtuals []f5ltm.VirtualServer

		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if certs, err = r.fetcher.Certificates(ctx); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if profiles, err = r.fetcher.ClientSSLProfiles(ctx); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if virtuals, err = r.fetcher.VirtualServers(ctx, opts.FetchVirtuals); err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	horizon := r.now().AddDate(0, 0, opts.ExpiresInDays)
	return crossReference(certs, profiles, virtuals, horizon, opts.FetchVirtuals), nil
}

// crossReference computes the report rows from already-fetched snapshots.
//
// Profiles are indexed by their cert reference and virtuals by their
// attached-profile references, turning the naive triple scan into O(1)
// lookups without changing semantics. Row order is deterministic:
// certificate fetch order primary, profile fetch order secondary.
func crossReference(certs []f5ltm.Certificate, profiles []f5ltm.ClientSSLProfile, virtuals []f5ltm.VirtualServer, horizon time.Time, deep bool) []Row {
	profilesByCertRef := make(map[string][]f5ltm.ClientSSLProfile, len(profiles))
	for _, p := range profiles {
		profilesByCertRef[p.CertRef] = append(profilesByCertRef[p.CertRef], p)
	}

	var virtualsByProfileRef map[string][]VirtualRef
	if deep {
		virtualsByProfileRef = make(map[string][]VirtualRef, len(virtuals))
		for _, v := range virtuals {
			for _, ref := range v.ProfileRefs {
				virtualsByProfileRef[ref] = append(virtualsByProfileRef[ref], VirtualRef{
					ID:          v.ID.FullPath(),
					Description: v.Description,
				})
			}
		}
	}

	rows := make([]Row, 0, len(certs))
	seen := make(map[string]bool, len(certs))

	for _, cert := range certs {
		// One-sided filter: strictly before the horizon, so an expiration
		// exactly at the horizon is excluded and past expirations are always
		// included.
		if !cert.ExpiresAt.Before(horizon) {
			continue
		}

		// Upstream does not guarantee identity uniqueness; the first
		// partition/name pair wins.
		id := cert.ID.FullPath()
		if seen[id] {
			continue
		}
		seen[id] = true

		matched := profilesByCertRef[id]
		if len(matched) == 0 {
			rows = append(rows, Row{
				Certificate:    cert.ID,
				Partition:      cert.ID.Partition(),
				Expiration:     cert.ExpiresAt,
				Subject:        cert.Subject,
				SubjectAltName: cert.SubjectAlternativeName,
			})
			continue
		}

		for _, profile := range matched {
			profileID := profile.ID

			// nil, not an empty slice, when a matched profile has no
			// referencing virtuals: the row is emitted either way.
			var refs []VirtualRef
			if deep {
				if found := virtualsByProfileRef[profileID.FullPath()]; len(found) > 0 {
					refs = found
				}
			}

			rows = append(rows, Row{
				Certificate:    cert.ID,
				Partition:      cert.ID.Partition(),
				Profile:        &profileID,
				Expiration:     cert.ExpiresAt,
				Subject:        cert.Subject,
				SubjectAltName: cert.SubjectAlternativeName,
				Virtuals:       refs,
			})
		}
	}

	return rows
}
