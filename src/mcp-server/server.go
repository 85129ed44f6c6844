// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/config"
	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
	f5ltm "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/ltm"
	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/version"
)

var serverName = "BIG-IP Expiring Certificate Reporter" // MCP server name
var appVersion = version.Version                        // default version

// GetVersion returns the current version of the MCP server.
func GetVersion() string {
	return appVersion
}

// serverState holds the loaded configuration and the lazily built appliance
// connection shared by all tool handlers.
//
// The connection is built on first use rather than at startup so the server
// can come up (and report configuration problems per tool call) even when
// the appliance is unreachable or credentials arrive later via environment.
type serverState struct {
	cfg *config.Config

	mu  sync.Mutex
	svc *f5ltm.Service
}

// newServerState creates the shared handler state from loaded configuration.
func newServerState(cfg *config.Config) *serverState {
	return &serverState{cfg: cfg}
}

// service returns the appliance service, building it on first use.
func (st *serverState) service() (*f5ltm.Service, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.svc != nil {
		return st.svc, nil
	}

	api, err := f5client.New(st.cfg.ClientConfig())
	if err != nil {
		return nil, err
	}

	svc := f5ltm.NewService(api)
	svc.Concurrency = st.cfg.Report.Concurrency
	st.svc = svc
	return svc, nil
}

// Run starts the MCP server with BIG-IP certificate reporting tools.
//
// Configuration is loaded from the BIGIP_CONFIG_FILE environment variable
// (JSON or YAML), with BIGIP_HOST, BIGIP_USERNAME, and BIGIP_PASSWORD
// overriding file values. The server speaks the stdio transport and shuts
// down cleanly on SIGINT or SIGTERM.
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	// Load configuration
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	state := newServerState(cfg)

	// Create MCP server
	s := server.NewMCPServer(
		serverName,
		appVersion,
		server.WithToolCapabilities(true),
	)

	// Register tool handlers
	for _, def := range createTools(state) {
		s.AddTool(def.Tool, def.Handler)
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
