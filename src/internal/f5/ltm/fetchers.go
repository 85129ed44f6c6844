// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5ltm

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
)

const (
	certificatePath = "/mgmt/tm/sys/file/ssl-cert"
	profilePath     = "/mgmt/tm/ltm/profile/client-ssl"
	virtualPath     = "/mgmt/tm/ltm/virtual"
	poolPath        = "/mgmt/tm/ltm/pool"
	nodePath        = "/mgmt/tm/ltm/node"

	// defaultConcurrency bounds the deep-mode per-virtual profile fetches.
	defaultConcurrency = 8
)

// Service provides read and write operations against the LTM configuration
// objects of a single BIG-IP. All entities are fetched fresh per call; the
// service holds no cache.
type Service struct {
	api *f5client.Client

	// Concurrency bounds the deep-mode per-virtual fan-out. Values below 1
	// fall back to the default.
	Concurrency int
}

// NewService creates a Service backed by an authenticated session client.
func NewService(api *f5client.Client) *Service {
	return &Service{api: api, Concurrency: defaultConcurrency}
}

// Certificates fetches all SSL certificate file objects. The upstream
// expirationDate (seconds since the Unix epoch) is converted to an absolute
// timestamp.
func (s *Service) Certificates(ctx context.Context) ([]Certificate, error) {
	var list certificateList
	if err := s.api.GetJSON(ctx, certificatePath, &list); err != nil {
		return nil, err
	}

	certs := make([]Certificate, 0, len(list.Items))
	for _, item := range list.Items {
		id, err := NewObjectID(item.Partition, item.Name)
		if err != nil {
			return nil, &f5client.TransportError{
				Op:  http.MethodGet + " " + certificatePath,
				Err: fmt.Errorf("certificate %q in partition %q: %w", item.Name, item.Partition, err),
			}
		}
		certs = append(certs, Certificate{
			ID:                     id,
			Subject:                item.Subject,
			SubjectAlternativeName: item.SubjectAlternativeName,
			ExpiresAt:              time.Unix(item.ExpirationDate, 0).UTC(),
		})
	}
	return certs, nil
}

// ClientSSLProfiles fetches all client-ssl profiles.
func (s *Service) ClientSSLProfiles(ctx context.Context) ([]ClientSSLProfile, error) {
	var list profileList
	if err := s.api.GetJSON(ctx, profilePath, &list); err != nil {
		return nil, err
	}

	profiles := make([]ClientSSLProfile, 0, len(list.Items))
	for _, item := range list.Items {
		id, err := NewObjectID(item.Partition, item.Name)
		if err != nil {
			return nil, &f5client.TransportError{
				Op:  http.MethodGet + " " + profilePath,
				Err: fmt.Errorf("profile %q in partition %q: %w", item.Name, item.Partition, err),
			}
		}
		profiles = append(profiles, ClientSSLProfile{
			ID:           id,
			CertRef:      item.Cert,
			KeyRef:       item.Key,
			ChainRef:     item.Chain,
			DefaultsFrom: item.DefaultsFrom,
		})
	}
	return profiles, nil
}

// VirtualServers fetches all virtual servers. When deep is true, each
// virtual's profilesReference link (with any embedded loopback host rewritten
// to the real session host) is fetched to populate ProfileRefs. The fan-out
// is one extra call per virtual, issued by a bounded worker pool; the first
// failure cancels the remaining fetches and aborts the whole call.
func (s *Service) VirtualServers(ctx context.Context, deep bool) ([]VirtualServer, error) {
	var list virtualList
	if err := s.api.GetJSON(ctx, virtualPath, &list); err != nil {
		return nil, err
	}

	virtuals := make([]VirtualServer, 0, len(list.Items))
	for _, item := range list.Items {
		id, err := NewObjectID(item.Partition, item.Name)
		if err != nil {
			return nil, &f5client.TransportError{
				Op:  http.MethodGet + " " + virtualPath,
				Err: fmt.Errorf("virtual %q in partition %q: %w", item.Name, item.Partition, err),
			}
		}
		virtuals = append(virtuals, VirtualServer{
			ID:           id,
			Description:  item.Description,
			ProfilesLink: s.api.RewriteLoopback(item.ProfilesReference.Link),
		})
	}

	if !deep {
		return virtuals, nil
	}
	if err := s.populateProfileRefs(ctx, virtuals); err != nil {
		return nil, err
	}
	return virtuals, nil
}

// populateProfileRefs fetches each virtual's attached-profile list
// concurrently, writing results into the virtual's original slot. Matching
// later is done by identity, not position, so completion order is
// irrelevant.
func (s *Service) populateProfileRefs(ctx context.Context, virtuals []VirtualServer) error {
	concurrency := s.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := range virtuals {
		if virtuals[i].ProfilesLink == "" {
			continue
		}

		wg.Add(1)
		go func(v *VirtualServer) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			refs, err := s.virtualProfileRefs(ctx, v.ProfilesLink)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			v.ProfileRefs = refs
		}(&virtuals[i])
	}

	wg.Wait()
	return firstErr
}

// virtualProfileRefs fetches one virtual's attached profiles and returns
// their fully qualified "/partition/name" reference strings.
func (s *Service) virtualProfileRefs(ctx context.Context, link string) ([]string, error) {
	var list virtualProfileList
	if err := s.api.GetJSON(ctx, link, &list); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		switch {
		case item.FullPath != "":
			refs = append(refs, item.FullPath)
		case item.Partition != "":
			refs = append(refs, "/"+item.Partition+"/"+item.Name)
		default:
			refs = append(refs, item.Name)
		}
	}
	return refs, nil
}

// Pools fetches all LTM pools.
func (s *Service) Pools(ctx context.Context) ([]Pool, error) {
	var list poolList
	if err := s.api.GetJSON(ctx, poolPath, &list); err != nil {
		return nil, err
	}

	pools := make([]Pool, 0, len(list.Items))
	for _, item := range list.Items {
		id, err := NewObjectID(item.Partition, item.Name)
		if err != nil {
			return nil, &f5client.TransportError{
				Op:  http.MethodGet + " " + poolPath,
				Err: fmt.Errorf("pool %q in partition %q: %w", item.Name, item.Partition, err),
			}
		}
		pools = append(pools, Pool{ID: id, Description: item.Description, Monitor: item.Monitor})
	}
	return pools, nil
}

// Nodes fetches all LTM nodes.
func (s *Service) Nodes(ctx context.Context) ([]Node, error) {
	var list nodeList
	if err := s.api.GetJSON(ctx, nodePath, &list); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(list.Items))
	for _, item := range list.Items {
		id, err := NewObjectID(item.Partition, item.Name)
		if err != nil {
			return nil, &f5client.TransportError{
				Op:  http.MethodGet + " " + nodePath,
				Err: fmt.Errorf("node %q in partition %q: %w", item.Name, item.Partition, err),
			}
		}
		nodes = append(nodes, Node{ID: id, Address: item.Address, State: item.State})
	}
	return nodes, nil
}
