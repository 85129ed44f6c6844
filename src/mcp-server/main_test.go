// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/config"
)

// newApplianceMux serves a minimal appliance: login, one expired
// certificate, one matching profile, and one virtual referencing it.
func newApplianceMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/mgmt/shared/authn/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]any{"token": "TOK-1", "startTime": "2026-03-01T12:00:00Z"},
		})
	})
	mux.HandleFunc("/mgmt/tm/sys/file/ssl-cert", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"name": "old.example.com", "partition": "Common", "expirationDate": 1, "subject": "CN=old.example.com"},
			},
		})
	})
	mux.HandleFunc("/mgmt/tm/ltm/profile/client-ssl", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"name": "old-profile", "partition": "Common", "cert": "/Common/old.example.com"},
			},
		})
	})
	mux.HandleFunc("/mgmt/tm/ltm/virtual", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"name": "vs1", "partition": "Common", "description": "front door"},
			},
		})
	})
	mux.HandleFunc("/mgmt/tm/util/bash", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"commandResult": "12:00:00 up 42 days\n"})
	})
	return mux
}

// newTestState builds handler state pointing at a test appliance.
func newTestState(t *testing.T, host string) *serverState {
	t.Helper()

	for _, key := range []string{config.EnvConfigFile, config.EnvHost, config.EnvUsername, config.EnvPassword} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Connection.Host = host
	cfg.Connection.Username = "admin"
	cfg.Connection.Password = "secret"

	return newServerState(cfg)
}

// callRequest builds a tool call request with the given arguments.
func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText concatenates the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)

	content := ""
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			content += tc.Text
		}
	}
	return content
}

func TestCreateTools(t *testing.T) {
	state := newTestState(t, "bigip.example.com")
	tools := createTools(state)
	require.Len(t, tools, 3)

	names := make([]string, 0, len(tools))
	for _, def := range tools {
		names = append(names, def.Tool.Name)
		assert.NotNil(t, def.Handler, "tool %s has no handler", def.Tool.Name)
	}
	assert.Equal(t, []string{"get_expiring_certificates", "list_virtual_servers", "run_bash_command"}, names)
}

func TestHandleGetExpiringCertificates(t *testing.T) {
	srv := httptest.NewServer(newApplianceMux())
	defer srv.Close()

	state := newTestState(t, srv.URL)

	tests := []struct {
		name           string
		args           map[string]any
		expectContains []string
	}{
		{
			name: "Markdown Output",
			args: map[string]any{
				"expires_in_days": 30,
				"fetch_virtuals":  false,
			},
			expectContains: []string{"1 expiring or expired", "/Common/old.example.com", "/Common/old-profile"},
		},
		{
			name: "JSON Output",
			args: map[string]any{
				"format":         "json",
				"fetch_virtuals": false,
			},
			expectContains: []string{`"certificateId": "/Common/old.example.com"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := state.handleGetExpiringCertificates(context.Background(), callRequest("get_expiring_certificates", tt.args))
			require.NoError(t, err)
			require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))

			content := resultText(t, result)
			for _, expected := range tt.expectContains {
				assert.Contains(t, content, expected)
			}
		})
	}
}

func TestHandleGetExpiringCertificates_UnknownFormat(t *testing.T) {
	state := newTestState(t, "bigip.example.com")

	result, err := state.handleGetExpiringCertificates(context.Background(),
		callRequest("get_expiring_certificates", map[string]any{"format": "xml"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unknown format")
}

func TestHandleListVirtualServers(t *testing.T) {
	srv := httptest.NewServer(newApplianceMux())
	defer srv.Close()

	state := newTestState(t, srv.URL)

	result, err := state.handleListVirtualServers(context.Background(),
		callRequest("list_virtual_servers", map[string]any{}))
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))

	content := resultText(t, result)
	assert.Contains(t, content, "/Common/vs1")
	assert.Contains(t, content, "front door")
}

func TestHandleRunBashCommand(t *testing.T) {
	srv := httptest.NewServer(newApplianceMux())
	defer srv.Close()

	state := newTestState(t, srv.URL)

	result, err := state.handleRunBashCommand(context.Background(),
		callRequest("run_bash_command", map[string]any{"command": "uptime"}))
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))
	assert.Contains(t, resultText(t, result), "up 42 days")
}

func TestHandleRunBashCommand_MissingArgument(t *testing.T) {
	state := newTestState(t, "bigip.example.com")

	result, err := state.handleRunBashCommand(context.Background(),
		callRequest("run_bash_command", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "command parameter required")
}

func TestHandlers_UnconfiguredConnection(t *testing.T) {
	state := newTestState(t, "")

	result, err := state.handleRunBashCommand(context.Background(),
		callRequest("run_bash_command", map[string]any{"command": "uptime"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "appliance connection not configured")
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
