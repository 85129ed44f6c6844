// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolDefinition pairs an MCP tool with its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// createTools creates all MCP tool definitions bound to the shared state.
//
// The function defines the following tools:
//   - get_expiring_certificates: Reports expired and soon-to-expire SSL
//     certificates cross-referenced with profiles and virtual servers
//   - list_virtual_servers: Lists virtual servers, optionally with their
//     attached client-ssl profile references
//   - run_bash_command: Executes a shell command on the appliance
func createTools(state *serverState) []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("get_expiring_certificates",
				mcp.WithDescription("Report SSL certificates on the BIG-IP that are expired or expiring soon, with the client-ssl profiles and virtual servers using them"),
				mcp.WithNumber("expires_in_days",
					mcp.Description(fmt.Sprintf("Report certificates expiring before now plus this many days (default: %d)", state.cfg.Report.ExpiresInDays)),
					mcp.DefaultNumber(float64(state.cfg.Report.ExpiresInDays)),
				),
				mcp.WithBoolean("fetch_virtuals",
					mcp.Description(fmt.Sprintf("Correlate virtual servers with matched profiles (default: %v)", state.cfg.Report.FetchVirtuals)),
					mcp.DefaultBool(state.cfg.Report.FetchVirtuals),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
					mcp.DefaultString("markdown"),
				),
			),
			Handler: state.handleGetExpiringCertificates,
		},
		{
			Tool: mcp.NewTool("list_virtual_servers",
				mcp.WithDescription("List virtual servers configured on the BIG-IP"),
				mcp.WithBoolean("deep",
					mcp.Description("Include each virtual's attached client-ssl profile references (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: state.handleListVirtualServers,
		},
		{
			Tool: mcp.NewTool("run_bash_command",
				mcp.WithDescription("Run a shell command on the BIG-IP via the util/bash endpoint (requires advanced shell access)"),
				mcp.WithString("command",
					mcp.Required(),
					mcp.Description("Shell command to execute on the appliance"),
				),
			),
			Handler: state.handleRunBashCommand,
		},
	}
}
