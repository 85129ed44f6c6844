// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5ltm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyPartition indicates an object identity with an empty partition.
	ErrEmptyPartition = errors.New("f5ltm: empty partition")

	// ErrEmptyName indicates an object identity with an empty name.
	ErrEmptyName = errors.New("f5ltm: empty object name")

	// ErrEmbeddedSeparator indicates a partition or name containing the "/"
	// path separator, which would make the partition-qualified identity
	// ambiguous.
	ErrEmbeddedSeparator = errors.New("f5ltm: partition or name contains a path separator")

	// ErrMalformedPath indicates a path that is not of the form
	// "/partition/name".
	ErrMalformedPath = errors.New("f5ltm: malformed object path")
)

// ObjectID is the partition-qualified identity of a BIG-IP configuration
// object. Matching across certificates, profiles, and virtual servers is
// done by exact, case-sensitive equality of these identities.
//
// ObjectID is comparable; two identities are equal iff both partition and
// name are equal.
type ObjectID struct {
	partition string
	name      string
}

// NewObjectID constructs an ObjectID, rejecting empty components and
// components with an embedded "/" separator.
func NewObjectID(partition, name string) (ObjectID, error) {
	if partition == "" {
		return ObjectID{}, ErrEmptyPartition
	}
	if name == "" {
		return ObjectID{}, ErrEmptyName
	}
	if strings.Contains(partition, "/") || strings.Contains(name, "/") {
		return ObjectID{}, ErrEmbeddedSeparator
	}
	return ObjectID{partition: partition, name: name}, nil
}

// ParseObjectID parses a fully qualified "/partition/name" path.
func ParseObjectID(path string) (ObjectID, error) {
	trimmed := strings.TrimPrefix(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ObjectID{}, fmt.Errorf("%w: %q", ErrMalformedPath, path)
	}
	return NewObjectID(parts[0], parts[1])
}

// Partition returns the partition component.
func (id ObjectID) Partition() string { return id.partition }

// Name returns the name component.
func (id ObjectID) Name() string { return id.name }

// FullPath returns the fully qualified "/partition/name" form, the exact
// string BIG-IP uses in reference fields such as a profile's cert.
func (id ObjectID) FullPath() string { return "/" + id.partition + "/" + id.name }

// String returns the fully qualified path.
func (id ObjectID) String() string { return id.FullPath() }

// IsZero reports whether the identity is the zero value.
func (id ObjectID) IsZero() bool { return id.partition == "" && id.name == "" }

// MarshalJSON encodes the identity as its fully qualified path string.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.FullPath())
}

// UnmarshalJSON decodes a fully qualified path string.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return err
	}
	parsed, err := ParseObjectID(path)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Certificate is a read-only snapshot of an SSL certificate file object
// (/mgmt/tm/sys/file/ssl-cert). ExpiresAt is the upstream expirationDate
// (seconds since the Unix epoch) converted to an absolute timestamp.
type Certificate struct {
	ID                     ObjectID
	Subject                string
	SubjectAlternativeName string
	ExpiresAt              time.Time
}

// ClientSSLProfile is a read-only snapshot of a client-ssl profile
// (/mgmt/tm/ltm/profile/client-ssl). CertRef, KeyRef, and ChainRef are fully
// qualified "/partition/name" reference strings.
type ClientSSLProfile struct {
	ID           ObjectID
	CertRef      string
	KeyRef       string
	ChainRef     string
	DefaultsFrom string
}

// VirtualServer is a read-only snapshot of a virtual server
// (/mgmt/tm/ltm/virtual). ProfileRefs holds the fully qualified paths of the
// attached profiles and is populated only in deep mode.
type VirtualServer struct {
	ID           ObjectID
	Description  string
	ProfilesLink string
	ProfileRefs  []string
}

// Pool is a read-only snapshot of an LTM pool.
type Pool struct {
	ID          ObjectID
	Description string
	Monitor     string
}

// Node is a read-only snapshot of an LTM node.
type Node struct {
	ID      ObjectID
	Address string
	State   string
}

// Wire shapes for the iControl REST collection endpoints.

type certificateList struct {
	Items []certificateItem `json:"items"`
}

type certificateItem struct {
	Name                   string `json:"name"`
	Partition              string `json:"partition"`
	Subject                string `json:"subject"`
	SubjectAlternativeName string `json:"subjectAlternativeName"`
	ExpirationDate         int64  `json:"expirationDate"`
}

type profileList struct {
	Items []profileItem `json:"items"`
}

type profileItem struct {
	Name         string `json:"name"`
	Partition    string `json:"partition"`
	Cert         string `json:"cert"`
	Key          string `json:"key"`
	Chain        string `json:"chain"`
	DefaultsFrom string `json:"defaultsFrom"`
}

type virtualList struct {
	Items []virtualItem `json:"items"`
}

type virtualItem struct {
	Name              string `json:"name"`
	Partition         string `json:"partition"`
	Description       string `json:"description"`
	ProfilesReference struct {
		Link string `json:"link"`
	} `json:"profilesReference"`
}

type virtualProfileList struct {
	Items []virtualProfileItem `json:"items"`
}

type virtualProfileItem struct {
	Name      string `json:"name"`
	Partition string `json:"partition"`
	FullPath  string `json:"fullPath"`
}

type poolList struct {
	Items []poolItem `json:"items"`
}

type poolItem struct {
	Name        string `json:"name"`
	Partition   string `json:"partition"`
	Description string `json:"description"`
	Monitor     string `json:"monitor"`
}

type nodeList struct {
	Items []nodeItem `json:"items"`
}

type nodeItem struct {
	Name      string `json:"name"`
	Partition string `json:"partition"`
	Address   string `json:"address"`
	State     string `json:"state"`
}
