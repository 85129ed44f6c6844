// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5ltm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
	f5ltm "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/ltm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthenticatingMux returns a mux pre-wired with the tmos login endpoint.
func newAuthenticatingMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/mgmt/shared/authn/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]any{"token": "TOK-1", "startTime": time.Now().Format(time.RFC3339)},
		})
	})
	return mux
}

func newTestService(t *testing.T, srv *httptest.Server) *f5ltm.Service {
	t.Helper()
	api, err := f5client.New(f5client.Config{Host: srv.URL, Username: "admin", Password: "secret"})
	require.NoError(t, err)
	return f5ltm.NewService(api)
}

func TestCertificatesFetch(t *testing.T) {
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/sys/file/ssl-cert", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"name":                   "site.com.crt",
					"partition":              "P1",
					"subject":                "CN=site.com",
					"subjectAlternativeName": "DNS:site.com",
					"expirationDate":         1767225600, // 2026-01-01T00:00:00Z
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	certs, err := svc.Certificates(context.Background())
	require.NoError(t, err)
	require.Len(t, certs, 1)

	assert.Equal(t, "/P1/site.com.crt", certs[0].ID.FullPath())
	assert.Equal(t, "CN=site.com", certs[0].Subject)
	assert.Equal(t, "DNS:site.com", certs[0].SubjectAlternativeName)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), certs[0].ExpiresAt)
}

func TestClientSSLProfilesFetch(t *testing.T) {
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/ltm/profile/client-ssl", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"name":         "site.com-profile",
					"partition":    "P1",
					"cert":         "/P1/site.com.crt",
					"key":          "/P1/site.com.key",
					"chain":        "/Common/ca-bundle.crt",
					"defaultsFrom": "/Common/clientssl",
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	profiles, err := svc.ClientSSLProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	assert.Equal(t, "/P1/site.com-profile", profiles[0].ID.FullPath())
	assert.Equal(t, "/P1/site.com.crt", profiles[0].CertRef)
	assert.Equal(t, "/P1/site.com.key", profiles[0].KeyRef)
	assert.Equal(t, "/Common/ca-bundle.crt", profiles[0].ChainRef)
}

func TestVirtualServersShallow(t *testing.T) {
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/ltm/virtual", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"name":        "vs1",
					"partition":   "P1",
					"description": "front door",
					"profilesReference": map[string]any{
						"link": "https://localhost/mgmt/tm/ltm/virtual/~P1~vs1/profiles?ver=15.1.0",
					},
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	virtuals, err := svc.VirtualServers(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, virtuals, 1)

	assert.Equal(t, "/P1/vs1", virtuals[0].ID.FullPath())
	assert.Equal(t, "front door", virtuals[0].Description)
	assert.Nil(t, virtuals[0].ProfileRefs, "shallow fetch must not populate profile refs")
	// The loopback host is rewritten to the real session host.
	assert.Equal(t, srv.URL+"/mgmt/tm/ltm/virtual/~P1~vs1/profiles?ver=15.1.0", virtuals[0].ProfilesLink)
}

func TestVirtualServersDeep(t *testing.T) {
	const virtualCount = 20

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/ltm/virtual", func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, 0, virtualCount)
		for i := range virtualCount {
			items = append(items, map[string]any{
				"name":      fmt.Sprintf("vs%d", i),
				"partition": "P1",
				"profilesReference": map[string]any{
					"link": fmt.Sprintf("https://localhost/mgmt/tm/ltm/virtual/~P1~vs%d/profiles", i),
				},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	for i := range virtualCount {
		i := i
		mux.HandleFunc(fmt.Sprintf("/mgmt/tm/ltm/virtual/~P1~vs%d/profiles", i), func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()

			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"name": fmt.Sprintf("profile%d", i), "partition": "P1"},
				},
			})
		})
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	svc.Concurrency = 4

	virtuals, err := svc.VirtualServers(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, virtuals, virtualCount)

	// Results land in each virtual's original slot regardless of completion order.
	for i, v := range virtuals {
		require.Len(t, v.ProfileRefs, 1)
		assert.Equal(t, fmt.Sprintf("/P1/profile%d", i), v.ProfileRefs[0])
	}

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, maxInFlight, 4, "fan-out must honor the concurrency bound")
}

func TestVirtualServersDeepAbortsOnFirstFailure(t *testing.T) {
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/ltm/virtual", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"name": "vs0", "partition": "P1", "profilesReference": map[string]any{"link": "https://localhost/profiles/vs0"}},
				{"name": "vs1", "partition": "P1", "profilesReference": map[string]any{"link": "https://localhost/profiles/vs1"}},
			},
		})
	})
	mux.HandleFunc("/profiles/vs0", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	})
	mux.HandleFunc("/profiles/vs1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	_, err := svc.VirtualServers(context.Background(), true)

	var trErr *f5client.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, http.StatusInternalServerError, trErr.StatusCode)
}

func TestUploadFileChunking(t *testing.T) {
	var mu sync.Mutex
	var ranges []string
	var received []byte

	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/shared/file-transfer/bulk/uploads/site.com.crt", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		mu.Lock()
		ranges = append(ranges, r.Header.Get("Content-Range"))
		received = append(received, body...)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)

	// 512KiB chunk size: 1MiB+1 byte becomes three chunks.
	data := make([]byte, 1024*1024+1)
	for i := range data {
		data[i] = byte(i % 251)
	}

	require.NoError(t, svc.UploadFile(context.Background(), "site.com.crt", data))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{
		"0-524287/1048577",
		"524288-1048575/1048577",
		"1048576-1048576/1048577",
	}, ranges)
	assert.Equal(t, data, received)
}

func TestUploadFileValidation(t *testing.T) {
	srv := httptest.NewServer(newAuthenticatingMux())
	defer srv.Close()
	svc := newTestService(t, srv)

	var cfgErr *f5client.ConfigurationError
	require.ErrorAs(t, svc.UploadFile(context.Background(), "", []byte("x")), &cfgErr)
	require.ErrorAs(t, svc.UploadFile(context.Background(), "f", nil), &cfgErr)
	require.ErrorAs(t, svc.UploadFileFrom(context.Background(), ""), &cfgErr)
}

func TestInstallCertAndKey(t *testing.T) {
	type install struct {
		Command       string `json:"command"`
		Name          string `json:"name"`
		FromLocalFile string `json:"from-local-file"`
	}

	var got install
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/sys/crypto/cert", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	require.NoError(t, svc.InstallCert(context.Background(), "site.com.crt", "/var/config/rest/downloads/site.com.crt"))

	assert.Equal(t, "install", got.Command)
	assert.Equal(t, "site.com.crt", got.Name)
	assert.Equal(t, "/var/config/rest/downloads/site.com.crt", got.FromLocalFile)
}

func TestProfileCreateAndUpdate(t *testing.T) {
	var created, patched map[string]any
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/ltm/profile/client-ssl", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		w.Write([]byte("{}"))
	})
	mux.HandleFunc("/mgmt/tm/ltm/profile/client-ssl/site.com-profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.Write([]byte("{}"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)

	require.NoError(t, svc.CreateClientSSLProfile(context.Background(), f5ltm.ProfileSpec{
		Name:         "site.com-profile",
		DefaultsFrom: "/Common/clientssl",
		Cert:         "/P1/site.com.crt",
		Key:          "/P1/site.com.key",
	}))
	assert.Equal(t, "site.com-profile", created["name"])
	assert.Equal(t, "/Common/clientssl", created["defaultsFrom"])

	require.NoError(t, svc.UpdateClientSSLProfile(context.Background(), "site.com-profile", f5ltm.ProfileSpec{
		Cert: "/P1/renewed.crt",
		Key:  "/P1/renewed.key",
	}))
	assert.Equal(t, "/P1/renewed.crt", patched["cert"])
	// Update never carries a name; unspecified fields default from the
	// existing profile on the appliance.
	_, hasName := patched["name"]
	assert.False(t, hasName)
}

func TestRunBashCommand(t *testing.T) {
	mux := newAuthenticatingMux()
	mux.HandleFunc("/mgmt/tm/util/bash", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "run", req["command"])
		assert.Equal(t, "-c 'tmsh show sys version'", req["utilCmdArgs"])

		json.NewEncoder(w).Encode(map[string]string{"commandResult": "Sys::Version"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv)
	out, err := svc.RunBashCommand(context.Background(), "tmsh show sys version")
	require.NoError(t, err)
	assert.Equal(t, "Sys::Version", out)
}
