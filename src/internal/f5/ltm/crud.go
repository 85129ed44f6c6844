// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5ltm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
)

const (
	uploadPathPrefix = "/mgmt/shared/file-transfer/bulk/uploads/"
	cryptoKeyPath    = "/mgmt/tm/sys/crypto/key"
	cryptoCertPath   = "/mgmt/tm/sys/crypto/cert"
	bashPath         = "/mgmt/tm/util/bash"

	// uploadChunkSize is the maximum number of bytes sent per upload request.
	uploadChunkSize = 512 * 1024
)

// UploadFile uploads raw bytes to the appliance's bulk file-transfer
// endpoint under the given filename. Large payloads are sent in chunks, each
// carrying a Content-Range header of the form "start-end/total".
func (s *Service) UploadFile(ctx context.Context, filename string, data []byte) error {
	if filename == "" {
		return &f5client.ConfigurationError{Field: "filename", Reason: "must not be empty"}
	}
	if len(data) == 0 {
		return &f5client.ConfigurationError{Field: "data", Reason: "must not be empty"}
	}

	path := uploadPathPrefix + filename
	total := len(data)

	for start := 0; start < total; start += uploadChunkSize {
		end := start + uploadChunkSize
		if end > total {
			end = total
		}

		header := http.Header{}
		header.Set("Content-Type", "application/octet-stream")
		header.Set("Content-Range", fmt.Sprintf("%d-%d/%d", start, end-1, total))

		if _, err := s.api.Do(ctx, http.MethodPost, path, header, data[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// UploadFileFrom reads a local file and uploads it under its base name.
// An empty source path is a configuration error raised before any network
// call.
func (s *Service) UploadFileFrom(ctx context.Context, localPath string) error {
	if localPath == "" {
		return &f5client.ConfigurationError{Field: "localPath", Reason: "must not be empty"}
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return &f5client.ConfigurationError{Field: "localPath", Reason: fmt.Sprintf("cannot be read: %v", err)}
	}
	return s.UploadFile(ctx, filepath.Base(localPath), data)
}

// installRequest is the wire shape of a crypto install command.
type installRequest struct {
	Command       string `json:"command"`
	Name          string `json:"name"`
	FromLocalFile string `json:"from-local-file"`
}

// InstallKey installs a previously uploaded private key under the given
// object name. fromLocalFile is the appliance-side path of the uploaded
// file (the bulk upload directory plus the uploaded filename).
func (s *Service) InstallKey(ctx context.Context, name, fromLocalFile string) error {
	return s.install(ctx, cryptoKeyPath, name, fromLocalFile)
}

// InstallCert installs a previously uploaded certificate under the given
// object name.
func (s *Service) InstallCert(ctx context.Context, name, fromLocalFile string) error {
	return s.install(ctx, cryptoCertPath, name, fromLocalFile)
}

func (s *Service) install(ctx context.Context, path, name, fromLocalFile string) error {
	if name == "" {
		return &f5client.ConfigurationError{Field: "name", Reason: "must not be empty"}
	}
	if fromLocalFile == "" {
		return &f5client.ConfigurationError{Field: "fromLocalFile", Reason: "must not be empty"}
	}
	return s.api.PostJSON(ctx, path, installRequest{
		Command:       "install",
		Name:          name,
		FromLocalFile: fromLocalFile,
	}, nil)
}

// ProfileSpec describes a client-ssl profile create or update payload.
// Empty fields are omitted; on update the appliance defaults them from the
// existing profile.
type ProfileSpec struct {
	Name         string `json:"name,omitempty"`
	DefaultsFrom string `json:"defaultsFrom,omitempty"`
	Cert         string `json:"cert,omitempty"`
	Key          string `json:"key,omitempty"`
	Chain        string `json:"chain,omitempty"`
}

// CreateClientSSLProfile creates a new client-ssl profile.
func (s *Service) CreateClientSSLProfile(ctx context.Context, spec ProfileSpec) error {
	if spec.Name == "" {
		return &f5client.ConfigurationError{Field: "Name", Reason: "must not be empty"}
	}
	return s.api.PostJSON(ctx, profilePath, spec, nil)
}

// UpdateClientSSLProfile patches an existing client-ssl profile. Only the
// cert, key, and chain references are sent; unspecified fields keep their
// current values.
func (s *Service) UpdateClientSSLProfile(ctx context.Context, name string, spec ProfileSpec) error {
	if name == "" {
		return &f5client.ConfigurationError{Field: "name", Reason: "must not be empty"}
	}
	patch := ProfileSpec{Cert: spec.Cert, Key: spec.Key, Chain: spec.Chain}
	return s.api.PatchJSON(ctx, profilePath+"/"+name, patch, nil)
}

// bashRequest is the wire shape of a util/bash invocation.
type bashRequest struct {
	Command     string `json:"command"`
	UtilCmdArgs string `json:"utilCmdArgs"`
}

// bashResponse is the wire shape of a util/bash result.
type bashResponse struct {
	CommandResult string `json:"commandResult"`
}

// RunBashCommand executes a shell command on the appliance via the
// util/bash endpoint and returns its output.
func (s *Service) RunBashCommand(ctx context.Context, cmd string) (string, error) {
	if cmd == "" {
		return "", &f5client.ConfigurationError{Field: "cmd", Reason: "must not be empty"}
	}

	var resp bashResponse
	if err := s.api.PostJSON(ctx, bashPath, bashRequest{
		Command:     "run",
		UtilCmdArgs: fmt.Sprintf("-c '%s'", cmd),
	}, &resp); err != nil {
		return "", err
	}
	return resp.CommandResult, nil
}
