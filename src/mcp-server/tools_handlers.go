// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	f5report "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/report"
)

// handleGetExpiringCertificates runs the expiring-certificate report and
// returns it as markdown or JSON.
func (st *serverState) handleGetExpiringCertificates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "markdown")
	if format != "markdown" && format != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (expected markdown or json)", format)), nil
	}

	opts := f5report.Options{
		ExpiresInDays: request.GetInt("expires_in_days", st.cfg.Report.ExpiresInDays),
		FetchVirtuals: request.GetBool("fetch_virtuals", st.cfg.Report.FetchVirtuals),
	}

	service, err := st.service()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("appliance connection not configured: %v", err)), nil
	}

	rows, err := f5report.NewReporter(service).GetExpiringOrExpiredCertificates(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute report: %v", err)), nil
	}

	if format == "json" {
		out, err := f5report.RenderJSON(rows)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}

	summary := fmt.Sprintf("Found %d expiring or expired certificate reference(s) within %d day(s):\n\n",
		len(rows), opts.ExpiresInDays)
	return mcp.NewToolResultText(summary + f5report.RenderTable(rows)), nil
}

// handleListVirtualServers lists virtual servers as JSON.
func (st *serverState) handleListVirtualServers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deep := request.GetBool("deep", false)

	service, err := st.service()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("appliance connection not configured: %v", err)), nil
	}

	virtuals, err := service.VirtualServers(ctx, deep)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list virtual servers: %v", err)), nil
	}

	out, err := json.MarshalIndent(virtuals, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode virtual servers: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleRunBashCommand executes a shell command on the appliance and returns
// its output.
func (st *serverState) handleRunBashCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := request.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("command parameter required: %v", err)), nil
	}

	service, err := st.service()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("appliance connection not configured: %v", err)), nil
	}

	output, err := service.RunBashCommand(ctx, command)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to run command: %v", err)), nil
	}
	return mcp.NewToolResultText(output), nil
}
